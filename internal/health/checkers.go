package health

import (
	"context"
	"errors"
)

// GatewayChecker reports readiness of the remote query gateway. Implemented
// by gateway.Gateway.
type GatewayChecker interface {
	Configured() bool
}

// SpeechChecker reports readiness of the on-device speech engine.
// Implemented by the device synthesis engine.
type SpeechChecker interface {
	Loaded() bool
}

// Gateway returns a [Checker] that fails while the remote query gateway has
// no provider configured.
func Gateway(gw GatewayChecker) Checker {
	return Checker{
		Name: "gateway",
		Check: func(_ context.Context) error {
			if gw == nil || !gw.Configured() {
				return errors.New("no remote provider configured")
			}
			return nil
		},
	}
}

// Speech returns a [Checker] that fails until the device voice catalogue has
// loaded. A nil engine means no device speech on this host.
func Speech(engine SpeechChecker) Checker {
	return Checker{
		Name: "speech",
		Check: func(_ context.Context) error {
			if engine == nil {
				return errors.New("no speech engine available")
			}
			if !engine.Loaded() {
				return errors.New("voice catalogue not loaded")
			}
			return nil
		},
	}
}
