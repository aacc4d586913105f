package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDeviceType(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		expected  string
	}{
		{
			name:      "iphone_is_mobile",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15",
			expected:  DeviceMobile,
		},
		{
			name:      "ipad_is_tablet",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 13_2 like Mac OS X) AppleWebKit/605.1.15",
			expected:  DeviceTablet,
		},
		{
			name:      "android_phone_is_mobile",
			userAgent: "Mozilla/5.0 (Linux; Android 11; Pixel 5) AppleWebKit/537.36 Mobile Safari/537.36",
			expected:  DeviceMobile,
		},
		{
			name:      "android_tablet_marker_wins",
			userAgent: "Mozilla/5.0 (Linux; Android 11; SM-T870 Tablet) AppleWebKit/537.36",
			expected:  DeviceTablet,
		},
		{
			name:      "kindle_silk_is_tablet",
			userAgent: "Mozilla/5.0 (Linux; Android 9; KFMAWI) Silk/94.2 Mobile Safari/537.36",
			expected:  DeviceTablet,
		},
		{
			name:      "blackberry_is_mobile",
			userAgent: "BlackBerry9700/5.0.0.862 Profile/MIDP-2.1",
			expected:  DeviceMobile,
		},
		{
			name:      "windows_phone_is_mobile",
			userAgent: "Mozilla/5.0 (Windows Phone 10.0; Android 6.0.1)",
			expected:  DeviceMobile,
		},
		{
			name:      "windows_desktop",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			expected:  DeviceDesktop,
		},
		{
			name:      "macintosh_desktop",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15",
			expected:  DeviceDesktop,
		},
		{
			name:      "ubuntu_desktop",
			userAgent: "Mozilla/5.0 (X11; Ubuntu; x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
			expected:  DeviceDesktop,
		},
		{
			name:      "unrecognized_defaults_to_desktop",
			userAgent: "curl/8.4.0",
			expected:  DeviceDesktop,
		},
		{
			name:      "empty_defaults_to_desktop",
			userAgent: "",
			expected:  DeviceDesktop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectDeviceType(tt.userAgent))
		})
	}
}

func TestDetectBrowser(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		expected  string
	}{
		{
			name:      "chrome",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
			expected:  "Chrome",
		},
		{
			name:      "edge_wins_over_chrome",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
			expected:  "Edge",
		},
		{
			name:      "firefox",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
			expected:  "Firefox",
		},
		{
			name:      "safari_without_chrome",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 Version/16.1 Safari/605.1.15",
			expected:  "Safari",
		},
		{
			name:      "opera_opr_token",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 OPR/95.0.0.0",
			expected:  "Opera",
		},
		{
			name:      "unknown",
			userAgent: "Wget/1.21.3",
			expected:  BrowserUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectBrowser(tt.userAgent))
		})
	}
}

func TestDetect(t *testing.T) {
	info := Detect("Mozilla/5.0 (iPad; CPU OS 13_2 like Mac OS X) AppleWebKit/605.1.15 Version/13.0 Safari/605.1.15")

	assert.Equal(t, DeviceTablet, info.DeviceType)
	assert.Equal(t, "Safari", info.Browser)
	assert.Equal(t, info.Raw, "Mozilla/5.0 (iPad; CPU OS 13_2 like Mac OS X) AppleWebKit/605.1.15 Version/13.0 Safari/605.1.15")
}
