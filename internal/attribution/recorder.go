// Package attribution builds a fully-enriched click event for a resolved
// short link and hands it off for asynchronous recording. Attribution is
// strictly best-effort: no failure here may ever delay or break the
// redirect itself.
package attribution

import (
	"Linkly-Backend/internal/analytics"
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/geo"
	"Linkly-Backend/internal/ipaddr"
	"Linkly-Backend/pkg/fingerprint"
	"Linkly-Backend/pkg/tracking"
	"Linkly-Backend/pkg/useragent"
	"context"
	"net"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Submitter accepts a finished click event for recording. Satisfied by
// *analytics.Processor.
type Submitter interface {
	SubmitClick(job *analytics.ClickJob) error
}

// Recorder assembles click events: device detection, IP resolution,
// fingerprinting and geolocation, then submission.
type Recorder struct {
	submitter Submitter
	ipSource  ipaddr.Source
	chain     *geo.Chain
	log       *zap.Logger
}

// NewRecorder creates a click attribution recorder. ipSource may be nil when
// no public-IP fallback is configured.
func NewRecorder(submitter Submitter, ipSource ipaddr.Source, chain *geo.Chain, log *zap.Logger) *Recorder {
	return &Recorder{
		submitter: submitter,
		ipSource:  ipSource,
		chain:     chain,
		log:       log,
	}
}

// Attempt is a single-use click recording for one resolved link. Run fires
// at most once per Attempt regardless of how many times it is called.
type Attempt struct {
	recorder *Recorder

	link      *domain.ShortLink
	userAgent string
	referer   string
	clientIP  string
	pos       geo.Positioner

	trackingID string
	fired      atomic.Bool
}

// NewAttempt prepares a click recording for a resolved link. The tracking ID
// is fixed at creation time so an Attempt identifies exactly one click.
// pos may be nil when the request carried no client coordinates.
func (r *Recorder) NewAttempt(link *domain.ShortLink, userAgent, referer, clientIP string, pos geo.Positioner) *Attempt {
	return &Attempt{
		recorder:   r,
		link:       link,
		userAgent:  userAgent,
		referer:    referer,
		clientIP:   clientIP,
		pos:        pos,
		trackingID: tracking.NewID(link.ID),
	}
}

// TrackingID returns the identifier this attempt records under.
func (a *Attempt) TrackingID() string {
	return a.trackingID
}

// Run gathers attribution data and submits the click. Repeat calls are
// no-ops; every error is logged and swallowed.
func (a *Attempt) Run(ctx context.Context) {
	if !a.fired.CompareAndSwap(false, true) {
		return
	}
	r := a.recorder

	info := useragent.Detect(a.userAgent)
	var osName *string
	if info.OS != "" {
		osName = &info.OS
	}

	// A loopback or LAN address is the proxy's view of the client, not the
	// client itself; the external lookup is the better guess then.
	ip := a.clientIP
	if !publicIP(ip) {
		ip = ""
		if r.ipSource != nil {
			resolved, err := r.ipSource.PublicIP(ctx)
			if err != nil {
				r.log.Debug("public IP lookup failed", zap.Error(err))
			} else {
				ip = resolved
			}
		}
	}

	var token string
	if ip != "" {
		token = fingerprint.FromIP(ip)
	} else {
		token = fingerprint.FromUserAgent(a.userAgent, time.Now())
	}

	loc := r.chain.Locate(ctx, ip, a.pos)

	click := &domain.Click{
		LinkID:     a.link.ID,
		TrackingID: a.trackingID,
		DeviceType: info.DeviceType,
		Browser:    info.Browser,
		OS:         osName,
		Lat:        &loc.Lat,
		Lng:        &loc.Lng,
		HashedIP:   &token,
		ClickedAt:  time.Now(),
	}
	if loc.CountryCode != "" {
		cc := loc.CountryCode
		click.CountryCode = &cc
	}
	if a.userAgent != "" {
		ua := a.userAgent
		click.UserAgent = &ua
	}
	if a.referer != "" {
		ref := a.referer
		click.Referer = &ref
	}

	if err := r.submitter.SubmitClick(&analytics.ClickJob{ShortCode: a.link.ShortCode, Click: click}); err != nil {
		r.log.Warn("click submission failed",
			zap.String("short_code", a.link.ShortCode),
			zap.String("tracking_id", a.trackingID),
			zap.Error(err))
	}
}

// publicIP reports whether ip is a routable client address worth recording.
func publicIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() && !parsed.IsPrivate() && !parsed.IsUnspecified()
}
