// Package tts defines the Provider interface for remote speech-synthesis
// backends.
//
// A TTS provider wraps a synthesis service (e.g., Google Cloud Text-to-Speech)
// and returns encoded audio for a complete utterance in a single call. The
// on-device synthesis capability lives in the device subpackage and is a
// separate abstraction: it plays audio itself rather than returning bytes.
//
// Implementations must be safe for concurrent use.
package tts

import "context"

// VoiceProfile describes the requested synthesis voice.
type VoiceProfile struct {
	// LanguageCode is the BCP-47 tag for the voice (e.g., "kn-IN").
	LanguageCode string

	// Gender is the requested voice gender ("FEMALE", "MALE", "NEUTRAL").
	Gender string

	// Encoding is the audio container requested from the service
	// (e.g., "MP3").
	Encoding string
}

// Provider is the abstraction over any remote TTS backend.
type Provider interface {
	// Synthesize renders text with the given voice and returns the decoded
	// audio bytes in the profile's encoding. One utterance per call.
	//
	// Implementations must never include access credentials in returned
	// errors.
	Synthesize(ctx context.Context, text string, voice VoiceProfile) ([]byte, error)
}
