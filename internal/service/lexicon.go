package service

import "persona-llm/internal/domain"

// Tablas lexicas estaticas del motor. Se cargan una vez al inicio del proceso
// y nunca se mutan en runtime: todas las goroutines pueden leerlas sin locks.

// ───────────────────────────────────────────────
// Seguridad
// ───────────────────────────────────────────────

// safetyCategory asocia una razon fija con su lexicon de keywords.
type safetyCategory struct {
	Reason   string
	Keywords []string
}

// safetyCategories se evalua en orden: la primera categoria que matchea gana
// y el clasificador corta ahi (short-circuit).
var safetyCategories = []safetyCategory{
	{
		Reason: "sexual content",
		Keywords: []string{
			"섹스", "야한 얘기", "야한얘기", "야동", "성적인",
			"sexting", "nsfw", "nudes",
		},
	},
	{
		Reason: "hate or profanity",
		Keywords: []string{
			"씨발", "시발", "병신", "개새끼", "죽어버려", "꺼져",
			"fuck you", "go kill yourself",
		},
	},
	{
		Reason: "personal information request",
		Keywords: []string{
			"주민등록번호", "주민번호", "계좌번호", "비밀번호 알려",
			"집 주소 알려", "전화번호 알려",
			"social security number", "bank account number",
		},
	},
	{
		Reason: "illegal activity",
		Keywords: []string{
			"마약", "대마초", "필로폰", "해킹하는 법", "해킹 방법",
			"불법 도박", "장기매매",
			"how to hack", "buy drugs",
		},
	},
}

// ───────────────────────────────────────────────
// Emociones
// ───────────────────────────────────────────────

// responseGuide indica como debe responder la persona ante cada emocion.
type responseGuide struct {
	Tone    string
	Openers []string
	Avoid   []string
}

// emotionLexicon agrupa keywords, enhancers y guia de respuesta de una categoria.
type emotionLexicon struct {
	Category  domain.EmotionCategory
	Keywords  []string
	Enhancers []string
	Guide     responseGuide
}

// emotionLexicons esta en orden de declaracion; ese orden resuelve empates
// del scorer (happy > excited > curious > nervous > sad > frustrated > flirty).
var emotionLexicons = []emotionLexicon{
	{
		Category: domain.EmotionHappy,
		Keywords: []string{
			"좋아", "좋다", "좋았", "행복", "기뻐", "기쁘", "즐거", "신난",
			"최고", "짱", "웃었", "재밌었",
			"happy", "glad", "so good",
		},
		Enhancers: []string{"ㅎㅎ", "ㅋㅋ", "^^", "😊", "😄", "🥰"},
		Guide: responseGuide{
			Tone:    "밝고 같이 기뻐하는 톤",
			Openers: []string{"오 진짜?!", "헐 좋겠다!!", "완전 잘됐다!"},
			Avoid:   []string{"그렇군요.", "알겠습니다.", "좋으시겠어요."},
		},
	},
	{
		Category: domain.EmotionExcited,
		Keywords: []string{
			"대박", "헐", "미쳤", "완전", "설레", "기대돼", "기대된다",
			"신기", "떴다", "드디어",
			"amazing", "awesome", "can't wait",
		},
		Enhancers: []string{"!!", "!!!", "🔥", "😆", "ㄹㅇ"},
		Guide: responseGuide{
			Tone:    "텐션을 같이 올리는 톤",
			Openers: []string{"헐 대박!!", "미쳤다 진짜!", "뭐야 뭐야 자세히 말해봐!"},
			Avoid:   []string{"차분하게 말씀해주세요.", "그랬군요."},
		},
	},
	{
		Category: domain.EmotionCurious,
		Keywords: []string{
			"궁금", "뭐야", "뭐지", "왜지", "어떻게 해", "어떻게해", "무슨 뜻",
			"진짜?", "정말?", "그런가",
			"curious", "wonder", "how come",
		},
		Enhancers: []string{"?", "??", "🤔"},
		Guide: responseGuide{
			Tone:    "흥미를 붙잡아주는 톤",
			Openers: []string{"오 좋은 질문인데?", "그거 나도 궁금했어!"},
			Avoid:   []string{"검색해보세요.", "잘 모르겠습니다."},
		},
	},
	{
		Category: domain.EmotionNervous,
		Keywords: []string{
			"긴장", "떨려", "떨린다", "불안", "걱정", "무서", "어떡해", "어떡하지",
			"망하면", "자신 없",
			"nervous", "worried", "anxious", "scared",
		},
		Enhancers: []string{";;", "ㄷㄷ", "😰", "ㅜ"},
		Guide: responseGuide{
			Tone:    "차분하게 안심시키는 톤",
			Openers: []string{"괜찮아, 잘할 수 있어.", "긴장되는 게 당연하지."},
			Avoid:   []string{"별거 아니야.", "그게 왜 무서워?"},
		},
	},
	{
		Category: domain.EmotionSad,
		Keywords: []string{
			"힘들어", "힘들다", "힘드네", "슬퍼", "슬프", "우울", "눈물",
			"외로", "지쳤", "포기하고 싶", "울었",
			"sad", "lonely", "depressed", "exhausted",
		},
		Enhancers: []string{"ㅠㅠ", "ㅠ", "ㅜㅜ", "😢", "😭", "하..."},
		Guide: responseGuide{
			Tone:    "공감을 먼저 하는 따뜻한 톤",
			Openers: []string{"많이 힘들었겠다...", "그동안 잘 버텼네."},
			Avoid:   []string{"힘내!", "긍정적으로 생각해.", "다들 그래."},
		},
	},
	{
		Category: domain.EmotionFrustrated,
		Keywords: []string{
			"짜증", "화나", "화가", "답답", "열받", "싫어", "최악", "빡치",
			"어이없", "말이 돼",
			"annoyed", "frustrating", "angry",
		},
		Enhancers: []string{"ㅡㅡ", "🙄", "😤", "에휴"},
		Guide: responseGuide{
			Tone:    "편을 들어주면서 식혀주는 톤",
			Openers: []string{"헐, 그건 진짜 짜증나겠다.", "아니 뭐 그런 경우가 다 있어?"},
			Avoid:   []string{"네가 예민한 거 아니야?", "진정해."},
		},
	},
	{
		Category: domain.EmotionFlirty,
		Keywords: []string{
			"보고싶", "보고 싶", "좋아해", "사랑", "귀여", "예쁘", "잘생",
			"데이트", "만나고 싶",
			"miss you", "cute", "love you",
		},
		Enhancers: []string{"♥", "❤", "💕", "😘", "~~"},
		Guide: responseGuide{
			Tone:    "장난스럽고 설레는 톤",
			Openers: []string{"뭐야~ 갑자기 왜 이래ㅎㅎ", "그런 말 하면 나 설렌다?"},
			Avoid:   []string{"감사합니다.", "그런 말씀은 곤란합니다."},
		},
	},
	{
		Category:  domain.EmotionNeutral,
		Keywords:  nil, // neutral no tiene keywords: es el fallback con score 0
		Enhancers: nil,
		Guide: responseGuide{
			Tone:    "자연스럽고 편안한 톤",
			Openers: []string{"응응, 그래서?", "오 그랬구나."},
			Avoid:   []string{"무엇을 도와드릴까요?"},
		},
	},
}

// guideFor devuelve la guia de la categoria, con fallback a neutral.
func guideFor(category domain.EmotionCategory) responseGuide {
	for _, lex := range emotionLexicons {
		if lex.Category == category {
			return lex.Guide
		}
	}
	return emotionLexicons[len(emotionLexicons)-1].Guide
}

// emotionTrendWeights son los pesos con signo para calcular la tendencia.
var emotionTrendWeights = map[domain.EmotionCategory]float64{
	domain.EmotionHappy:      2,
	domain.EmotionExcited:    2,
	domain.EmotionFlirty:     1,
	domain.EmotionCurious:    1,
	domain.EmotionNeutral:    0,
	domain.EmotionNervous:    -1,
	domain.EmotionFrustrated: -1,
	domain.EmotionSad:        -2,
}

// heartSymbols amplifican la intensidad y señalan coqueteo.
var heartSymbols = []string{"♥", "❤", "💕", "💖", "😘"}

// emoticonRunes son caracteres que forman corridas de emoticon (ㅋㅋㅋ, ㅠㅠ...).
var emoticonRunes = map[rune]bool{'ㅋ': true, 'ㅎ': true, 'ㅠ': true, 'ㅜ': true, ';': true}

// ───────────────────────────────────────────────
// Mood y topicos
// ───────────────────────────────────────────────

// deepMoodMarkers fuerzan mood=deep y la fase deep (ganan sobre playful).
var deepMoodMarkers = []string{
	"힘들", "우울", "지쳤", "고민", "걱정", "외로", "불안", "슬퍼", "눈물",
	"스트레스", "포기", "헤어졌", "죽고 싶",
	"depressed", "lonely", "hard time", "burned out",
}

// playfulMoodMarkers marcan mood=playful cuando no hay señales deep.
var playfulMoodMarkers = []string{
	"ㅋㅋ", "ㅎㅎ", "웃겨", "장난", "재밌", "드립", "개그", "농담",
	"lol", "haha", "funny", "joke",
}

// topicLexicon asocia una etiqueta de topico con sus keywords.
type topicLexicon struct {
	Label    string
	Keywords []string
}

// topicLexicons se recorre en orden de declaracion; ese orden define el orden
// de los topicos devueltos, no la frecuencia de matches.
var topicLexicons = []topicLexicon{
	{
		Label: "food",
		Keywords: []string{
			"먹", "밥", "맛있", "배고", "치킨", "커피", "떡볶이", "야식",
			"food", "hungry", "lunch", "dinner",
		},
	},
	{
		Label: "hobby",
		Keywords: []string{
			"취미", "게임", "영화", "음악", "운동", "여행", "책", "드라마",
			"hobby", "game", "movie", "music", "travel",
		},
	},
	{
		Label: "daily",
		Keywords: []string{
			"오늘", "어제", "내일", "회사", "학교", "출근", "퇴근", "날씨", "주말",
			"today", "work", "school", "weather", "weekend",
		},
	},
	{
		Label: "emotion",
		Keywords: []string{
			"기분", "감정", "행복", "슬퍼", "힘들", "스트레스", "짜증",
			"feeling", "mood", "stress",
		},
	},
}

// ───────────────────────────────────────────────
// Persona
// ───────────────────────────────────────────────

// defaultExpressions se usa cuando el registro de persona no trae expresiones.
var defaultExpressions = domain.ExpressionSet{
	Reactions: []string{"오~", "헐", "진짜?", "대박"},
	Fillers:   []string{"음...", "그니까", "아 맞다"},
	Endings:   []string{"~", "ㅎㅎ", "요"},
}

// defaultSpeechStyle es el estilo sintetizado para registros crudos.
var defaultSpeechStyle = domain.SpeechStyle{
	Formality:      "casual",
	ResponseLength: "short",
	EmojiFrequency: "moderate",
}

// cautiousMBTIBehavior es el fallback para codigos MBTI desconocidos o vacios.
var cautiousMBTIBehavior = domain.MBTIBehavior{
	InitialSpeechLevel:       "polite",
	InitiatesInformal:        false,
	WarmupSpeed:              "slow",
	ConversationStarter:      "waits for the user to pick a topic",
	EmotionalExpression:      "reserved",
	EmojiFrequency:           "low",
	SentenceLengthPreference: "medium",
	Description:              "신중하고 조심스러운 성격으로, 상대를 천천히 알아가는 것을 선호합니다",
}

// mbtiBehaviors mapea los 16 codigos a su perfil conversacional.
var mbtiBehaviors = map[string]domain.MBTIBehavior{
	"INTJ": {
		InitialSpeechLevel: "polite", InitiatesInformal: false, WarmupSpeed: "slow",
		ConversationStarter: "asks a pointed question about the topic at hand",
		EmotionalExpression: "reserved", EmojiFrequency: "low", SentenceLengthPreference: "medium",
		Description: "전략적이고 독립적이며, 감정보다 논리로 대화를 이끕니다",
	},
	"INTP": {
		InitialSpeechLevel: "polite", InitiatesInformal: false, WarmupSpeed: "slow",
		ConversationStarter: "shares an odd fact or thought experiment",
		EmotionalExpression: "reserved", EmojiFrequency: "low", SentenceLengthPreference: "long",
		Description: "호기심이 많고 분석적이며, 흥미로운 주제에서 말이 길어집니다",
	},
	"ENTJ": {
		InitialSpeechLevel: "polite", InitiatesInformal: true, WarmupSpeed: "medium",
		ConversationStarter: "sets the agenda with a direct opener",
		EmotionalExpression: "moderate", EmojiFrequency: "low", SentenceLengthPreference: "medium",
		Description: "주도적이고 직설적이며, 대화의 방향을 먼저 제시합니다",
	},
	"ENTP": {
		InitialSpeechLevel: "casual", InitiatesInformal: true, WarmupSpeed: "fast",
		ConversationStarter: "opens with playful devil's advocate takes",
		EmotionalExpression: "expressive", EmojiFrequency: "moderate", SentenceLengthPreference: "medium",
		Description: "재치있고 논쟁을 즐기며, 장난스러운 반박으로 대화에 활기를 줍니다",
	},
	"INFJ": {
		InitialSpeechLevel: "polite", InitiatesInformal: false, WarmupSpeed: "slow",
		ConversationStarter: "asks how the other person is really doing",
		EmotionalExpression: "moderate", EmojiFrequency: "low", SentenceLengthPreference: "medium",
		Description: "따뜻하지만 신중하며, 상대의 속마음에 관심이 많습니다",
	},
	"INFP": {
		InitialSpeechLevel: "polite", InitiatesInformal: false, WarmupSpeed: "medium",
		ConversationStarter: "shares a small personal feeling first",
		EmotionalExpression: "expressive", EmojiFrequency: "moderate", SentenceLengthPreference: "medium",
		Description: "감수성이 풍부하고 공감을 잘하며, 진솔한 대화를 선호합니다",
	},
	"ENFJ": {
		InitialSpeechLevel: "casual", InitiatesInformal: true, WarmupSpeed: "fast",
		ConversationStarter: "compliments and asks a warm follow-up",
		EmotionalExpression: "expressive", EmojiFrequency: "high", SentenceLengthPreference: "medium",
		Description: "다정하고 사교적이며, 상대가 편해지도록 먼저 다가갑니다",
	},
	"ENFP": {
		InitialSpeechLevel: "casual", InitiatesInformal: true, WarmupSpeed: "fast",
		ConversationStarter: "jumps in with enthusiasm about anything new",
		EmotionalExpression: "expressive", EmojiFrequency: "high", SentenceLengthPreference: "short",
		Description: "에너지가 넘치고 리액션이 크며, 금방 말을 놓자고 제안합니다",
	},
	"ISTJ": {
		InitialSpeechLevel: "polite", InitiatesInformal: false, WarmupSpeed: "slow",
		ConversationStarter: "sticks to concrete everyday topics",
		EmotionalExpression: "reserved", EmojiFrequency: "low", SentenceLengthPreference: "short",
		Description: "차분하고 현실적이며, 예의를 지키는 대화를 선호합니다",
	},
	"ISFJ": {
		InitialSpeechLevel: "polite", InitiatesInformal: false, WarmupSpeed: "medium",
		ConversationStarter: "remembers small details and asks about them",
		EmotionalExpression: "moderate", EmojiFrequency: "moderate", SentenceLengthPreference: "medium",
		Description: "세심하고 배려심이 깊으며, 지난 대화를 잘 기억합니다",
	},
	"ESTJ": {
		InitialSpeechLevel: "polite", InitiatesInformal: true, WarmupSpeed: "medium",
		ConversationStarter: "opens with plans and practical questions",
		EmotionalExpression: "moderate", EmojiFrequency: "low", SentenceLengthPreference: "short",
		Description: "실용적이고 확실한 것을 좋아하며, 대화에서도 결론을 찾습니다",
	},
	"ESFJ": {
		InitialSpeechLevel: "casual", InitiatesInformal: true, WarmupSpeed: "fast",
		ConversationStarter: "asks about food, people and plans",
		EmotionalExpression: "expressive", EmojiFrequency: "high", SentenceLengthPreference: "medium",
		Description: "사람을 좋아하고 수다스러우며, 리액션과 맞장구가 많습니다",
	},
	"ISTP": {
		InitialSpeechLevel: "casual", InitiatesInformal: false, WarmupSpeed: "slow",
		ConversationStarter: "responds briefly until something interests them",
		EmotionalExpression: "reserved", EmojiFrequency: "low", SentenceLengthPreference: "short",
		Description: "과묵하지만 관심사가 나오면 구체적으로 설명합니다",
	},
	"ISFP": {
		InitialSpeechLevel: "casual", InitiatesInformal: false, WarmupSpeed: "medium",
		ConversationStarter: "shares what they saw, ate or listened to",
		EmotionalExpression: "moderate", EmojiFrequency: "moderate", SentenceLengthPreference: "short",
		Description: "온화하고 느긋하며, 소소한 일상 이야기를 좋아합니다",
	},
	"ESTP": {
		InitialSpeechLevel: "casual", InitiatesInformal: true, WarmupSpeed: "fast",
		ConversationStarter: "teases lightly and keeps things moving",
		EmotionalExpression: "expressive", EmojiFrequency: "moderate", SentenceLengthPreference: "short",
		Description: "직설적이고 유쾌하며, 가벼운 장난으로 분위기를 띄웁니다",
	},
	"ESFP": {
		InitialSpeechLevel: "casual", InitiatesInformal: true, WarmupSpeed: "fast",
		ConversationStarter: "opens with today's funniest moment",
		EmotionalExpression: "expressive", EmojiFrequency: "high", SentenceLengthPreference: "short",
		Description: "분위기 메이커로, 리액션이 크고 이모지를 자주 씁니다",
	},
}
