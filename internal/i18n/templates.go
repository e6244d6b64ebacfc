package i18n

// MessageKey names a localised template in the registry.
type MessageKey string

const (
	// KeyGenericError is the bot message shown when the remote query fails.
	KeyGenericError MessageKey = "generic_error"

	// KeyNotConfigured is the bot message shown when the model credential is
	// missing or still the placeholder value.
	KeyNotConfigured MessageKey = "not_configured"

	// KeyMicPermission is the advisory shown when microphone access is denied.
	KeyMicPermission MessageKey = "mic_permission"

	// KeyListening is the transient status while a recognition session is live.
	KeyListening MessageKey = "listening"

	// KeyThinking is the transient status while a turn is loading.
	KeyThinking MessageKey = "thinking"

	// KeyInputPlaceholder is the input prompt hint.
	KeyInputPlaceholder MessageKey = "input_placeholder"

	// KeyWelcome is the greeting shown before the first message.
	KeyWelcome MessageKey = "welcome"

	// KeyVoiceUnsupported is shown when no recognition capability is present.
	KeyVoiceUnsupported MessageKey = "voice_unsupported"
)

// templates holds every (key, language) pair. English entries double as the
// fallback for any missing translation.
var templates = map[MessageKey]map[Language]string{
	KeyGenericError: {
		English: "Sorry, I encountered an error. Please try again.",
		Kannada: "ಕ್ಷಮಿಸಿ, ನಾನು ದೋಷವನ್ನು ಎದುರಿಸಿದ್ದೇನೆ. ದಯವಿಟ್ಟು ಮತ್ತೆ ಪ್ರಯತ್ನಿಸಿ.",
		Hindi:   "क्षमा करें, मुझे एक त्रुटि मिली। कृपया पुनः प्रयास करें।",
	},
	KeyNotConfigured: {
		English: "The assistant is not configured yet. Please add a model API key to the configuration.",
		Kannada: "ಸಹಾಯಕವನ್ನು ಇನ್ನೂ ಸಂರಚಿಸಲಾಗಿಲ್ಲ. ದಯವಿಟ್ಟು ಸಂರಚನೆಗೆ ಮಾದರಿ API ಕೀಲಿಯನ್ನು ಸೇರಿಸಿ.",
		Hindi:   "सहायक अभी कॉन्फ़िगर नहीं है। कृपया कॉन्फ़िगरेशन में मॉडल API कुंजी जोड़ें।",
	},
	KeyMicPermission: {
		English: "Please allow microphone access to use voice input",
		Kannada: "ಧ್ವನಿ ಇನ್‌ಪುಟ್ ಬಳಸಲು ದಯವಿಟ್ಟು ಮೈಕ್ರೋಫೋನ್ ಪ್ರವೇಶವನ್ನು ಅನುಮತಿಸಿ",
		Hindi:   "कृपया वॉइस इनपुट का उपयोग करने के लिए माइक्रोफोन एक्सेस की अनुमति दें",
	},
	KeyListening: {
		English: "Listening...",
		Kannada: "ಕೇಳುತ್ತಿದ್ದೇನೆ...",
		Hindi:   "सुन रहा हूँ...",
	},
	KeyThinking: {
		English: "Thinking...",
		Kannada: "ಯೋಚಿಸುತ್ತಿದ್ದೇನೆ...",
		Hindi:   "सोच रहा हूँ...",
	},
	KeyInputPlaceholder: {
		English: "Type your message...",
		Kannada: "ನಿಮ್ಮ ಸಂದೇಶವನ್ನು ಟೈಪ್ ಮಾಡಿ...",
		Hindi:   "अपना संदेश टाइप करें...",
	},
	KeyWelcome: {
		English: "Hello! How can I help you today?",
		Kannada: "ನಮಸ್ಕಾರ! ನಾನು ಇಂದು ನಿಮಗೆ ಹೇಗೆ ಸಹಾಯ ಮಾಡಬಹುದು?",
		Hindi:   "नमस्ते! आज मैं आपकी कैसे मदद कर सकता हूँ?",
	},
	KeyVoiceUnsupported: {
		English: "Voice input is not supported on this device",
		Kannada: "ಈ ಸಾಧನದಲ್ಲಿ ಧ್ವನಿ ಇನ್‌ಪುಟ್ ಬೆಂಬಲಿಸಲಾಗಿಲ್ಲ",
		Hindi:   "यह डिवाइस वॉइस इनपुट का समर्थन नहीं करता है",
	},
}

// Text returns the template for key in lang. A missing translation falls back
// to English; an unknown key returns the empty string.
func Text(key MessageKey, lang Language) string {
	byLang, ok := templates[key]
	if !ok {
		return ""
	}
	if s, ok := byLang[lang]; ok {
		return s
	}
	return byLang[English]
}
