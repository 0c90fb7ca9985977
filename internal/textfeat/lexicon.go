package textfeat

// Fixed word lists backing the text heuristics. Korean entries mirror the
// English ones so both languages hit the same buckets.

// englishStopWords are dropped before keyword extraction.
var englishStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "or": {},
	"that": {}, "the": {}, "this": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {}, "we": {}, "you": {}, "your": {}, "our": {},
	"can": {}, "than": {}, "then": {}, "they": {}, "their": {}, "there": {},
	"these": {}, "those": {}, "not": {}, "into": {}, "about": {}, "also": {},
	"more": {}, "most": {}, "other": {}, "some": {}, "such": {}, "which": {},
	"what": {}, "when": {}, "where": {}, "who": {}, "how": {}, "all": {},
	"each": {}, "any": {}, "both": {}, "own": {}, "same": {}, "so": {},
	"very": {}, "just": {}, "only": {}, "using": {}, "use": {}, "based": {},
}

// koreanParticles is the particle stop-list stripped from the tail of
// Korean tokens before counting.
var koreanParticles = []string{
	"은", "는", "이", "가", "을", "를", "의", "에", "에서", "으로", "로",
	"와", "과", "도", "만", "까지", "부터", "에게", "한테", "처럼", "보다",
	"이다", "입니다", "합니다", "하는", "하고", "하여", "해서",
}

// highPotentialKeywords mark markets the platform treats as hot.
var highPotentialKeywords = []string{
	"ai", "artificial intelligence", "blockchain", "fintech", "healthcare",
	"automation", "machine learning", "saas",
	"인공지능", "블록체인", "핀테크", "헬스케어", "자동화", "머신러닝",
}

// mediumPotentialKeywords mark broadly viable markets.
var mediumPotentialKeywords = []string{
	"ecommerce", "e-commerce", "education", "delivery", "subscription",
	"platform", "marketplace", "mobile", "social", "analytics", "booking",
	"이커머스", "교육", "배달", "구독", "플랫폼", "마켓플레이스", "모바일",
	"소셜", "분석", "예약",
}

// complexityKeywords map technology terms to an implementation complexity
// bucket. Terms not listed default to 3.
var complexityKeywords = map[string]int{
	"blockchain":          5,
	"machine learning":    5,
	"deep learning":       5,
	"ai":                  5,
	"quantum":             5,
	"distributed":         5,
	"실시간":              5,
	"블록체인":            5,
	"머신러닝":            5,
	"인공지능":            5,
	"api":                 3,
	"database":            3,
	"backend":             3,
	"dashboard":           3,
	"데이터베이스":        3,
	"대시보드":            3,
	"landing":             1,
	"static":              1,
	"template":            1,
	"크롤링":              1,
	"랜딩":                1,
	"템플릿":              1,
}

// innovativeKeywords add +10 each to the innovation score.
var innovativeKeywords = []string{
	"novel", "first", "unique", "disrupt", "revolutionary", "patent",
	"breakthrough", "최초", "혁신", "독창", "특허",
}

// emergingTechKeywords co-occurring (>=2 distinct) add +20 once.
var emergingTechKeywords = []string{
	"ai", "blockchain", "ar", "vr", "iot", "quantum", "metaverse", "llm",
	"인공지능", "블록체인", "메타버스",
}

// framingKeywords indicate problem/solution framing language, +15 once.
var framingKeywords = []string{
	"problem", "solution", "solve", "pain point", "need",
	"문제", "해결", "솔루션", "니즈",
}

// positiveWords and negativeWords back the English sentiment lexicon.
var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "innovative": {}, "easy": {},
	"fast": {}, "simple": {}, "powerful": {}, "efficient": {}, "best": {},
	"love": {}, "useful": {}, "helpful": {}, "reliable": {}, "secure": {},
	"smart": {}, "improve": {}, "growth": {}, "success": {}, "profit": {},
	"opportunity": {}, "convenient": {}, "seamless": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "poor": {}, "slow": {}, "hard": {}, "difficult": {},
	"complex": {}, "expensive": {}, "risk": {}, "problematic": {},
	"fail": {}, "failure": {}, "broken": {}, "worst": {}, "hate": {},
	"unreliable": {}, "insecure": {}, "loss": {}, "decline": {},
}

// koreanPositive and koreanNegative back the Korean sentiment heuristic.
var koreanPositive = []string{
	"좋은", "훌륭한", "혁신적인", "쉬운", "빠른", "간편한", "강력한",
	"효율적인", "편리한", "성장", "성공", "수익", "기회",
}

var koreanNegative = []string{
	"나쁜", "느린", "어려운", "복잡한", "비싼", "위험", "실패", "손실",
	"불편한", "하락",
}

// Deterministic keyword buckets for the categorization fallback.
var categoryBuckets = []struct {
	name     string
	keywords []string
}{
	{
		name: "technology",
		keywords: []string{
			"ai", "api", "app", "software", "platform", "automation", "data",
			"cloud", "blockchain", "crawl", "bot", "algorithm", "개발",
			"인공지능", "자동화", "플랫폼", "데이터", "블록체인",
		},
	},
	{
		name: "business",
		keywords: []string{
			"market", "revenue", "sales", "commerce", "subscription",
			"payment", "customer", "startup", "brand", "마케팅", "수익",
			"판매", "구독", "결제", "고객", "창업",
		},
	},
}

// fallbackCategory is returned when no bucket matches.
const fallbackCategory = "general"
