package i18n

// Category identifies one quick-reply suggestion theme. Categories form a
// closed set checked in a fixed priority order by the suggestion engine.
type Category string

const (
	CategoryMarket  Category = "market"
	CategoryWeather Category = "weather"
	CategoryLoan    Category = "loan"
	CategoryDefault Category = "default"
)

// replyCatalog maps (category, language) to its fixed three suggestions.
var replyCatalog = map[Category]map[Language][3]string{
	CategoryMarket: {
		English: {"Show me rice prices", "What about vegetables?", "Tell me about pulses"},
		Kannada: {"ಅಕ್ಕಿ ಬೆಲೆಗಳನ್ನು ತೋರಿಸಿ", "ತರಕಾರಿಗಳ ಬಗ್ಗೆ ಏನು?", "ಬೇಳೆಕಾಳುಗಳ ಬಗ್ಗೆ ಹೇಳಿ"},
		Hindi:   {"मुझे चावल की कीमतें दिखाएं", "सब्जियों के बारे में क्या?", "दालों के बारे में बताएं"},
	},
	CategoryWeather: {
		English: {"Today's forecast", "Weekly weather", "Best time to plant"},
		Kannada: {"ಇಂದಿನ ಮುನ್ಸೂಚನೆ", "ವಾರದ ಹವಾಮಾನ", "ನೆಡುವ ಉತ್ತಮ ಸಮಯ"},
		Hindi:   {"आज का पूर्वानुमान", "साप्ताहिक मौसम", "बोने का सबसे अच्छा समय"},
	},
	CategoryLoan: {
		English: {"SHG loan rates", "Kisan Credit Card", "How to apply"},
		Kannada: {"ಸ್ವಯಂ ಸಹಾಯ ಸಂಘ ಸಾಲ ದರಗಳು", "ಕಿಸಾನ್ ಕ್ರೆಡಿಟ್ ಕಾರ್ಡ್", "ಹೇಗೆ ಅರ್ಜಿ ಸಲ್ಲಿಸುವುದು"},
		Hindi:   {"एसएचजी ऋण दरें", "किसान क्रेडिट कार्ड", "आवेदन कैसे करें"},
	},
	CategoryDefault: {
		English: {"Crop advice", "Market prices", "Weather forecast"},
		Kannada: {"ಬೆಳೆ ಸಲಹೆ", "ಮಾರುಕಟ್ಟೆ ಬೆಲೆಗಳು", "ಹವಾಮಾನ ಮುನ್ಸೂಚನೆ"},
		Hindi:   {"फसल सलाह", "बाजार भाव", "मौसम पूर्वानुमान"},
	},
}

// Replies returns the fixed ordered suggestion triple for the category in the
// given language, falling back to English for missing translations.
func Replies(cat Category, lang Language) [3]string {
	byLang, ok := replyCatalog[cat]
	if !ok {
		byLang = replyCatalog[CategoryDefault]
	}
	if set, ok := byLang[lang]; ok {
		return set
	}
	return byLang[English]
}

// QuickAction is a canned starter prompt offered before the first message.
type QuickAction struct {
	// Title is the short localised label.
	Title string

	// Prompt is the full message submitted when the action is chosen.
	Prompt string
}

var quickActions = map[Language][]QuickAction{
	English: {
		{Title: "Crop Advice", Prompt: "I need advice on which crops to plant this season"},
		{Title: "Market Prices", Prompt: "Show me current market prices for agricultural products"},
		{Title: "Group Loans", Prompt: "Tell me about SHG loan options and requirements"},
		{Title: "Skill Tips", Prompt: "What skills can help me improve my farming or business?"},
	},
	Kannada: {
		{Title: "ಬೆಳೆ ಸಲಹೆ", Prompt: "ಈ ಋತುವಿನಲ್ಲಿ ಯಾವ ಬೆಳೆಗಳನ್ನು ನೆಡಬೇಕೆಂದು ಸಲಹೆ ಬೇಕು"},
		{Title: "ಮಾರುಕಟ್ಟೆ ಬೆಲೆಗಳು", Prompt: "ಕೃಷಿ ಉತ್ಪನ್ನಗಳ ಪ್ರಸ್ತುತ ಮಾರುಕಟ್ಟೆ ಬೆಲೆಗಳನ್ನು ತೋರಿಸಿ"},
		{Title: "ಸಮೂಹ ಸಾಲಗಳು", Prompt: "ಸ್ವಯಂ ಸಹಾಯ ಸಂಘ ಸಾಲ ಆಯ್ಕೆಗಳು ಮತ್ತು ಅಗತ್ಯತೆಗಳ ಬಗ್ಗೆ ಹೇಳಿ"},
		{Title: "ಕೌಶಲ್ಯ ಸಲಹೆಗಳು", Prompt: "ನನ್ನ ಕೃಷಿ ಅಥವಾ ವ್ಯವಹಾರವನ್ನು ಸುಧಾರಿಸಲು ಯಾವ ಕೌಶಲ್ಯಗಳು ಸಹಾಯ ಮಾಡಬಹುದು?"},
	},
	Hindi: {
		{Title: "फसल सलाह", Prompt: "मुझे सलाह चाहिए कि इस मौसम में कौन सी फसलें लगाऊं"},
		{Title: "बाजार भाव", Prompt: "मुझे कृषि उत्पादों की वर्तमान बाजार कीमतें दिखाएं"},
		{Title: "समूह ऋण", Prompt: "मुझे एसएचजी ऋण विकल्पों और आवश्यकताओं के बारे में बताएं"},
		{Title: "कौशल सुझाव", Prompt: "कौन से कौशल मेरी खेती या व्यवसाय को बेहतर बनाने में मदद कर सकते हैं?"},
	},
}

// QuickActions returns the four starter actions for lang.
func QuickActions(lang Language) []QuickAction {
	if a, ok := quickActions[lang]; ok {
		return a
	}
	return quickActions[English]
}

// domainKeywords are the classifier keywords the transcript corrector snaps
// recognised speech onto. The suggestion engine matches on the English forms
// regardless of interface language, so the lexicon is language-independent.
var domainKeywords = []string{
	"market", "price", "prices",
	"weather", "rain",
	"loan", "credit",
	"crop", "rice", "wheat", "vegetables", "pulses",
}

// KeywordLexicon returns the domain keyword list. The returned slice is a
// copy; callers may reorder it freely.
func KeywordLexicon() []string {
	out := make([]string, len(domainKeywords))
	copy(out, domainKeywords)
	return out
}
