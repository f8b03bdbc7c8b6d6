package extract_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/stagenote"
	"github.com/fwojciec/stagenote/extract"
	"github.com/fwojciec/stagenote/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Title_PatternBeforeSelector(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<h1>사이트 공통 페이지 헤더</h1>`)
	rec := extract.New().Extract(extract.Source{
		Doc:      doc,
		PageText: "정명훈 & 원 코리아 오케스트라 <베토벤 합창>",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "정명훈 & 원 코리아 오케스트라 <베토벤 합창>", rec.Title)
}

func TestExtractor_Title_SelectorFallback(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<h1>2025 신년음악회</h1>`)
	rec := extract.New().Extract(extract.Source{
		Doc:      doc,
		PageText: "공연 안내 페이지입니다.",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "2025 신년음악회", rec.Title)
}

func TestExtractor_Title_MissIsNotAnError(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		URL: "https://example.com/concert/1",
	})

	assert.Equal(t, "", rec.Title)
	assert.NoError(t, rec.Validate())
}

func TestExtractor_Date_FullDateTime(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "공연일시 2024.11.20 (수) 19:30 입니다",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "2024.11.20 (수) 19:30", rec.Date)
}

func TestExtractor_Date_SeparateTimeAppended(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "2024년 11월 20일 공연\n시간 19:30",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "2024년 11월 20일 19:30", rec.Date)
}

func TestExtractor_Date_SelectorFallback(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<ul class="info_detail"><li>일시: 11/20 오후 7시 30분</li></ul>`)
	rec := extract.New().Extract(extract.Source{
		Doc:      doc,
		PageText: "예매는 홈페이지에서 가능합니다.",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "일시: 11/20 오후 7시 30분", rec.Date)
}

func TestExtractor_Date_OCRFallback(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "포스터를 참고하세요.",
		OCRText:  "2025.03.01 예술의전당",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "2025.03.01", rec.Date)
	assert.True(t, rec.OCRExtracted)
}

func TestExtractor_Venue_KnownVenueTightened(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "장소: 예술의전당 콘서트홀\n예매 바로가기",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "예술의전당 콘서트홀", rec.Venue)
}

func TestExtractor_Venue_SelectorFallback(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<div class="venue">현대카드 언더스테이지</div>`)
	rec := extract.New().Extract(extract.Source{
		Doc:      doc,
		PageText: "특별한 밤을 준비했습니다.",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "현대카드 언더스테이지", rec.Venue)
}

func TestExtractor_Venue_KeywordFallback(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "공연장: 어울림누리 별따기극장\n문의 031-000-0000",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "어울림누리 별따기극장", rec.Venue)
}

func TestExtractor_Venue_OCRFallback(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "자세한 내용은 포스터 참조.",
		OCRText:  "세종문화회관 대극장",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "세종문화회관 대극장", rec.Venue)
}

func TestExtractor_Venue_OCRIgnoresGenericTokens(t *testing.T) {
	t.Parallel()

	// OCR text only matches full venue names; a bare hall token in noisy
	// poster text is not a venue.
	rec := extract.New().Extract(extract.Source{
		PageText: "자세한 내용은 포스터 참조.",
		OCRText:  "콘서트홀 2층에서 만나요",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "", rec.Venue)
}

func TestExtractor_Venue_OCRFullNameNotShadowed(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "자세한 내용은 포스터 참조.",
		OCRText:  "롯데콘서트홀 로비 안내",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "롯데콘서트홀 로비 안내", rec.Venue)
}

func TestExtractor_Performers_ChannelsAndDedupe(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"지휘 | 정명훈",
		"소프라노 | 황수미 Sumi Hwang",
		"출연: 정명훈, 임윤찬",
		"피아노: 조성진",
	}, "\n")

	rec := extract.New().Extract(extract.Source{
		PageText: text,
		URL:      "https://example.com/concert/1",
	})

	// The pipe listing wins for 정명훈; the later bare mention from the
	// generic cast line is suppressed by substring containment.
	assert.Equal(t, []string{
		"정명훈 - 지휘",
		"황수미 (Sumi Hwang) - 소프라노",
		"조성진 (피아노)",
		"임윤찬",
	}, rec.Performers)
}

func TestExtractor_Performers_RoleKeywordRequiresTerminator(t *testing.T) {
	t.Parallel()

	// 지휘 here starts the word 지휘자 inside prose; the run after it ends
	// at "!", not at a comma, newline, or end of text, so the role-keyword
	// channel must not fire.
	rec := extract.New().Extract(extract.Source{
		PageText: "지휘자와 함께하는 음악여행! 문의 02-1234-5678",
		URL:      "https://example.com/concert/1",
	})

	assert.Empty(t, rec.Performers)
}

func TestExtractor_Performers_RoleKeywordTerminatedRun(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "지휘: 정명훈\n예매 안내",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, []string{"정명훈 (지휘)"}, rec.Performers)
}

func TestExtractor_Performers_Cap(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`<ul class="cast_list">`)
	for i := 0; i < stagenote.MaxPerformers+5; i++ {
		fmt.Fprintf(&b, "<li>단원%02d</li>", i)
	}
	b.WriteString(`</ul>`)

	rec := extract.New().Extract(extract.Source{
		Doc: parse(t, b.String()),
		URL: "https://example.com/concert/1",
	})

	assert.Len(t, rec.Performers, stagenote.MaxPerformers)
	assert.NoError(t, rec.Validate())
}

func TestExtractor_Program_WellKnownWork(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "베토벤 교향곡 제9번 '합창' Op. 125 전악장",
		URL:      "https://example.com/concert/1",
	})

	require.Len(t, rec.Program, 1)
	assert.Contains(t, rec.Program[0], "교향곡 제9번")
}

func TestExtractor_Program_KeywordSplit(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "곡목: 아리랑 환상곡, 뱃노래 주제에 의한 변주곡",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, []string{"아리랑 환상곡", "뱃노래 주제에 의한 변주곡"}, rec.Program)
}

func TestExtractor_Program_OCRNumberedWorks(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		OCRText: "교향곡 제5번 운명",
		URL:     "https://example.com/concert/1",
	})

	assert.Equal(t, []string{"교향곡 제5번 운명"}, rec.Program)
	assert.True(t, rec.OCRExtracted)
}

func TestExtractor_Program_OpusTrimsTrailingText(t *testing.T) {
	t.Parallel()

	text := "쇼팽: 피아노 협주곡 제1번 Op. 11 과 이어지는 아주 길고 긴 해설 텍스트가 계속 이어집니다"
	rec := extract.New().Extract(extract.Source{
		PageText: text,
		URL:      "https://example.com/concert/1",
	})

	require.Len(t, rec.Program, 1)
	assert.True(t, strings.HasPrefix(rec.Program[0], "쇼팽: 피아노 협주곡 제1번 Op. 11"))
	assert.Less(t, utf8.RuneCountInString(rec.Program[0]), utf8.RuneCountInString(text))
}

func TestExtractor_Price_SeatTiers(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "티켓 R석 150,000원, S석 100,000원 예매하기",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "R석 150,000원, S석 100,000원", rec.Price)
}

func TestExtractor_Price_GeneralScanFiltersImplausible(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "입장료 50,000원, 문의 02-580-1300, 주차 500원",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "50,000원", rec.Price)
}

func TestExtractor_Price_SelectorFirst(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<div class="ticket_info">전석 30,000원</div>`)
	rec := extract.New().Extract(extract.Source{
		Doc:      doc,
		PageText: "예매는 전화로만 받습니다.",
		URL:      "https://example.com/concert/1",
	})

	assert.Equal(t, "전석 30,000원", rec.Price)
}

func TestExtractor_Description_Truncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("설명", 600)
	doc := parse(t, `<div class="description">`+long+`</div>`)
	rec := extract.New().Extract(extract.Source{
		Doc: doc,
		URL: "https://example.com/concert/1",
	})

	assert.Equal(t, stagenote.MaxDescriptionLen, utf8.RuneCountInString(rec.Description))
}

func TestExtractor_Description_LongestParagraphFallback(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<p>짧은 단락</p><p>이 공연은 올해 가장 기대되는 무대입니다</p>`)
	rec := extract.New().Extract(extract.Source{
		Doc: doc,
		URL: "https://example.com/concert/1",
	})

	assert.Equal(t, "이 공연은 올해 가장 기대되는 무대입니다", rec.Description)
}

func TestExtractor_PosterCandidates(t *testing.T) {
	t.Parallel()

	doc := parse(t, `
		<head><meta property="og:image" content="https://example.com/og.jpg"></head>
		<div class="poster"><img src="/img/poster.jpg"></div>`)

	rendered := []stagenote.RenderedImage{
		{URL: "https://cdn.example.com/main_visual.png", Width: 1200, Height: 800},
		{URL: "https://cdn.example.com/tiny_poster.png", Width: 200, Height: 200},
		{URL: "https://cdn.example.com/hero.png", Width: 900, Height: 900},
		{URL: "https://cdn.example.com/second_poster.png", Width: 800, Height: 1100},
	}

	got := extract.New().PosterCandidates(doc, "https://example.com/concert/1", rendered)

	// The small image and the keyword-less image are rejected; the second
	// rendered candidate is dropped by the cap.
	assert.Equal(t, []string{
		"https://example.com/img/poster.jpg",
		"https://example.com/og.jpg",
		"https://cdn.example.com/main_visual.png",
	}, got)
}

func TestExtractor_Extract_RawTextCollapsedAndCapped(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{
		PageText: "첫줄   텍스트\n\n둘째줄",
		OCRText:  "포스터 글자",
		URL:      "https://example.com/concert/1",
	})
	assert.Equal(t, "첫줄 텍스트 둘째줄 포스터 글자", rec.RawText)

	long := extract.New().Extract(extract.Source{
		PageText: strings.Repeat("가 ", stagenote.MaxRawTextLen),
		URL:      "https://example.com/concert/1",
	})
	assert.Equal(t, stagenote.MaxRawTextLen, utf8.RuneCountInString(long.RawText))
}

func TestExtractor_Extract_EmptyInputs(t *testing.T) {
	t.Parallel()

	rec := extract.New().Extract(extract.Source{URL: "https://example.com/concert/1"})

	assert.Equal(t, "https://example.com/concert/1", rec.SourceURL)
	assert.False(t, rec.ScrapedAt.IsZero())
	assert.Empty(t, rec.Performers)
	assert.Empty(t, rec.Program)
	assert.False(t, rec.OCRExtracted)
	assert.NoError(t, rec.Validate())
}

func TestExtractor_Extract_Deterministic(t *testing.T) {
	t.Parallel()

	src := extract.Source{
		PageText: "2024.11.20 (수) 19:30 예술의전당 콘서트홀\n지휘 | 정명훈\nR석 150,000원",
		URL:      "https://example.com/concert/1",
	}

	e := extract.New()
	a, b := e.Extract(src), e.Extract(src)
	b.ScrapedAt = a.ScrapedAt
	assert.Equal(t, a, b)
}

func TestExtractor_Extract_FullPage(t *testing.T) {
	t.Parallel()

	html := `
<html>
<head><title>공연 상세</title></head>
<body>
	<h1 class="concert_title">2025 송년음악회</h1>
	<ul class="info_detail">
		<li>일시: 2024.12.30 (월) 19:30</li>
		<li>장소: 세종문화회관 대극장</li>
	</ul>
	<div class="description">연말을 마무리하는 대규모 합창 공연으로, 오케스트라와 합창단이 함께 무대에 오르는 특별한 프로그램을 준비했습니다.</div>
</body>
</html>`
	doc := parse(t, html)

	pageText := strings.Join([]string{
		"2025 송년음악회",
		"일시: 2024.12.30 (월) 19:30",
		"장소: 세종문화회관 대극장",
		"지휘 | 정명훈",
		"곡목: 아리랑 환상곡, 뱃노래 주제에 의한 변주곡",
		"R석 150,000원, S석 100,000원",
	}, "\n")

	rec := extract.New().Extract(extract.Source{
		Doc:         doc,
		PageText:    pageText,
		URL:         "https://example.com/concert/1",
		PosterImage: "https://example.com/img/poster.jpg",
	})

	assert.Equal(t, "2025 송년음악회", rec.Title)
	assert.Equal(t, "2024.12.30 (월) 19:30", rec.Date)
	assert.Equal(t, "세종문화회관 대극장", rec.Venue)
	assert.Contains(t, rec.Performers, "정명훈 - 지휘")
	assert.Equal(t, []string{"아리랑 환상곡", "뱃노래 주제에 의한 변주곡"}, rec.Program)
	assert.Equal(t, "R석 150,000원, S석 100,000원", rec.Price)
	assert.Equal(t, "https://example.com/img/poster.jpg", rec.PosterImage)
	assert.False(t, rec.OCRExtracted)
	assert.NoError(t, rec.Validate())
}

func parse(t *testing.T, html string) stagenote.Document {
	t.Helper()
	doc, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)
	return doc
}
