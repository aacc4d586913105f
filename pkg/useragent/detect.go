package useragent

import "strings"

// Device type values recorded with each click.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// BrowserUnknown is recorded when no browser family rule matches.
const BrowserUnknown = "Unknown"

// DeviceInfo holds the classification derived from a User-Agent string.
type DeviceInfo struct {
	DeviceType string // mobile, tablet, desktop
	Browser    string // Chrome, Firefox, Safari, Edge, Opera or Unknown
	OS         string // OS family from the uap-go parser, empty if unavailable
	Raw        string // original User-Agent string
}

var (
	mobileMarkers = []string{
		"android", "iphone", "ipad", "ipod", "mobile",
		"blackberry", "windows phone",
	}
	tabletMarkers = []string{
		"ipad", "tablet", "kindle", "playbook", "silk",
	}
	desktopMarkers = []string{
		"windows", "macintosh", "mac os x", "linux",
		"ubuntu", "fedora", "debian",
	}
)

// Detect classifies a User-Agent string into device type and browser family.
// The substring rules are kept byte-compatible with the analytics rows already
// recorded by older clients, so dashboards aggregate consistently.
func Detect(userAgent string) DeviceInfo {
	info := DeviceInfo{
		DeviceType: DetectDeviceType(userAgent),
		Browser:    DetectBrowser(userAgent),
		Raw:        userAgent,
	}

	if p := GetGlobalParser(); p != nil {
		info.OS = p.ParseOS(userAgent)
	}

	return info
}

// DetectDeviceType maps a User-Agent to mobile, tablet or desktop.
func DetectDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if containsAny(ua, mobileMarkers) {
		if containsAny(ua, tabletMarkers) {
			return DeviceTablet
		}
		return DeviceMobile
	}

	if containsAny(ua, desktopMarkers) {
		return DeviceDesktop
	}

	return DeviceDesktop
}

// DetectBrowser maps a User-Agent to a browser family name. Rules are
// evaluated in order and the first match wins: Chromium-based Edge carries
// both "chrome" and "edg", so the Chrome rule excludes "edg" and Edge is
// matched further down.
func DetectBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "chrome") && !strings.Contains(ua, "edg"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome"):
		return "Safari"
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr"):
		return "Opera"
	default:
		return BrowserUnknown
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
