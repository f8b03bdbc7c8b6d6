package extract

// Vocabulary holds the fixed domain knowledge the extraction cascades match
// against: known venue names, composer names, role keyword matrices, and
// opus-number markers. The tables are treated as immutable once an Extractor
// is constructed; supply a custom Vocabulary to adapt the engine to another
// domain or language.
type Vocabulary struct {
	// Venues are known performance venue names, scanned in order.
	Venues []string

	// OCRVenues are the venue names recognized in OCR text. The list is
	// restricted to full venue names; generic tokens like "콘서트홀" would
	// latch onto noisy poster text.
	OCRVenues []string

	// VenueKeywords anchor the keyword-proximity venue fallback
	// ("venue: ..." style captures).
	VenueKeywords []string

	// TitlePatterns are exact, source-specific title regexes tried before
	// the generic bracketed-title patterns.
	TitlePatterns []string

	// Composers anchor program captures. Western names and
	// Korean transliterations are both listed.
	Composers []string

	// OpusMarkers are regex fragments recognizing work-number tokens
	// (Op., BWV, K., ...) used to tighten composer-anchored captures.
	OpusMarkers []string

	// PipeRoles drive the "role | name" performer channel, in order.
	PipeRoles []PipeRole

	// KeywordRoles drive the bilingual role-keyword performer channel,
	// in order.
	KeywordRoles []KeywordRole

	// ProgramKeywords anchor the keyword-proximity program channel.
	ProgramKeywords []string
}

// PipeRole is one entry of the "role | name" performer channel.
type PipeRole struct {
	// Role is the label appended to the extracted name.
	Role string

	// Keyword is the regex fragment matching the role label in text.
	// Defaults to the Role itself when empty.
	Keyword string
}

// KeywordRole is one entry of the role-keyword performer channel. Each role
// is matched with a Korean and an English keyword pattern; the captures
// default to a generic name-run class unless overridden (ensembles capture
// runs ending in the ensemble word itself).
type KeywordRole struct {
	Role       string
	Kor        string
	Eng        string
	KorCapture string
	EngCapture string
}

// DefaultVocabulary returns the built-in tables for Korean classical
// performance pages.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Venues: []string{
			"예술의전당", "SAC", "콘서트홀", "리사이틀홀", "IBK챔버홀",
			"롯데콘서트홀", "세종문화회관", "통영국제음악당", "대구콘서트하우스",
			"아트센터", "오페라하우스", "음악당", "LG아트센터", "블루스퀘어",
			"금호아트홀", "예술의 전당", "Seoul Arts Center",
		},
		OCRVenues: []string{
			"예술의전당", "롯데콘서트홀", "세종문화회관", "통영국제음악당",
			"LG아트센터", "금호아트홀", "블루스퀘어",
		},
		VenueKeywords: []string{"장소", "공연장", "venue", "location", "홀", "hall"},
		TitlePatterns: []string{
			`정명훈\s*&\s*원\s*코리아\s*오케스트라\s*<[^>]+>`,
		},
		Composers: []string{
			"Bach", "Mozart", "Beethoven", "Brahms", "Chopin", "Schubert", "Schumann",
			"Liszt", "Wagner", "Verdi", "Puccini", "Debussy", "Ravel", "Stravinsky",
			"Prokofiev", "Shostakovich", "Tchaikovsky", "Rachmaninoff", "Mahler",
			"Haydn", "Handel", "Vivaldi", "Mendelssohn", "Dvorak", "Sibelius",
			"Grieg", "Saint-Saens", "Berlioz", "Rossini", "Strauss", "Bartok",
			"바흐", "모차르트", "베토벤", "브람스", "쇼팽", "슈베르트", "슈만",
			"리스트", "바그너", "베르디", "푸치니", "드뷔시", "라벨", "차이콥스키",
			"라흐마니노프", "말러", "하이든", "헨델", "비발디", "멘델스존",
		},
		OpusMarkers: []string{
			`Op\.\s*\d+`, `BWV\s*\d+`, `K\.\s*\d+`, `D\.\s*\d+`,
			`Hob\.\s*[IVX]+`, `No\.\s*\d+`, `작품\s*\d+`,
		},
		PipeRoles: []PipeRole{
			{Role: "지휘"},
			{Role: "소프라노"},
			{Role: "메조 소프라노", Keyword: `메조\s*소프라노`},
			{Role: "테너"},
			{Role: "바리톤"},
			{Role: "연주"},
			{Role: "합창"},
		},
		KeywordRoles: []KeywordRole{
			{Role: "지휘", Kor: "지휘", Eng: "Conductor"},
			{Role: "피아노", Kor: "피아노", Eng: "Piano"},
			{Role: "바이올린", Kor: "바이올린", Eng: "Violin"},
			{Role: "첼로", Kor: "첼로", Eng: "Cello"},
			{Role: "소프라노", Kor: "소프라노", Eng: "Soprano"},
			{Role: "메조소프라노", Kor: `메조\s*소프라노`, Eng: `Mezzo[\s\-]*Soprano`},
			{Role: "테너", Kor: "테너", Eng: "Tenor"},
			{Role: "바리톤", Kor: "바리톤", Eng: "Baritone"},
			{
				Role: "오케스트라", Kor: "오케스트라", Eng: "Orchestra",
				KorCapture: `[가-힣a-zA-Z\s]+오케스트라`, EngCapture: `[a-zA-Z\s]+Orchestra`,
			},
			{
				Role: "합창단", Kor: "합창단", Eng: "Choir",
				KorCapture: `[가-힣a-zA-Z\s]+합창단`, EngCapture: `[a-zA-Z\s]+Choir`,
			},
		},
		ProgramKeywords: []string{"프로그램", "곡목", "Program", "Repertoire"},
	}
}
