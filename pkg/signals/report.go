package signals

import "github.com/dmitrymomot/devicekit/pkg/canvas"

// Report is the JSON document a browser agent posts with the properties it
// could read. Absent properties are omitted or null.
type Report struct {
	UserAgent           *string           `json:"userAgent,omitempty"`
	Platform            *string           `json:"platform,omitempty"`
	Screen              *ScreenReport     `json:"screen,omitempty"`
	Viewport            *ViewportReport   `json:"viewport,omitempty"`
	DevicePixelRatio    *float64          `json:"devicePixelRatio,omitempty"`
	TouchEvents         *bool             `json:"touchEvents,omitempty"`
	MaxTouchPoints      *int              `json:"maxTouchPoints,omitempty"`
	HardwareConcurrency *int              `json:"hardwareConcurrency,omitempty"`
	Connection          *ConnectionReport `json:"connection,omitempty"`
	Orientation         *string           `json:"orientation,omitempty"`
	Language            *string           `json:"language,omitempty"`
	TimezoneOffset      *int              `json:"timezoneOffset,omitempty"`
	CookieEnabled       *bool             `json:"cookieEnabled,omitempty"`
	CanvasDataURL       *string           `json:"canvasDataUrl,omitempty"`
}

type ScreenReport struct {
	Width      *int `json:"width,omitempty"`
	Height     *int `json:"height,omitempty"`
	ColorDepth *int `json:"colorDepth,omitempty"`
	PixelDepth *int `json:"pixelDepth,omitempty"`
}

type ViewportReport struct {
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
}

type ConnectionReport struct {
	Type          *string `json:"type,omitempty"`
	EffectiveType *string `json:"effectiveType,omitempty"`
}

// Environment converts the report into an Environment.
func (r Report) Environment() Environment {
	env := Environment{
		UserAgent:           FromPtr(r.UserAgent),
		Platform:            FromPtr(r.Platform),
		PixelRatio:          FromPtr(r.DevicePixelRatio),
		TouchEvents:         FromPtr(r.TouchEvents),
		MaxTouchPoints:      FromPtr(r.MaxTouchPoints),
		HardwareConcurrency: FromPtr(r.HardwareConcurrency),
		Orientation:         FromPtr(r.Orientation),
		Language:            FromPtr(r.Language),
		TimezoneOffset:      FromPtr(r.TimezoneOffset),
		CookiesEnabled:      FromPtr(r.CookieEnabled),
	}

	if r.Screen != nil {
		env.ScreenWidth = FromPtr(r.Screen.Width)
		env.ScreenHeight = FromPtr(r.Screen.Height)
		env.ColorDepth = FromPtr(r.Screen.ColorDepth)
		env.PixelDepth = FromPtr(r.Screen.PixelDepth)
	}
	if r.Viewport != nil {
		env.ViewportWidth = FromPtr(r.Viewport.Width)
		env.ViewportHeight = FromPtr(r.Viewport.Height)
	}
	if r.Connection != nil {
		env.Network = Some(NetworkInfo{
			Type:          FromPtr(r.Connection.Type),
			EffectiveType: FromPtr(r.Connection.EffectiveType),
		})
	}
	if r.CanvasDataURL != nil && *r.CanvasDataURL != "" {
		env.Canvas = Some(canvas.Recorded(*r.CanvasDataURL))
	}

	return env
}
