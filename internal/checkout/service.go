package checkout

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/prasetyoadi/umkm-storefront/internal/cart"
	"github.com/prasetyoadi/umkm-storefront/internal/order"
	"github.com/prasetyoadi/umkm-storefront/internal/shipping"
	"github.com/prasetyoadi/umkm-storefront/pkg/config"
	"github.com/prasetyoadi/umkm-storefront/pkg/errors"
	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
	"github.com/prasetyoadi/umkm-storefront/pkg/metrics"
)

// State tracks where a session sits in the invoice flow.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateDownloaded State = "downloaded"
	StateCopied     State = "copied"
	StateShared     State = "shared"
)

// Action names one way a generated invoice can leave the server.
type Action string

const (
	ActionDownload Action = "download"
	ActionCopy     Action = "copy"
	ActionShare    Action = "share"
)

// Capabilities reports which dispatch actions this deployment supports.
// Probed once at construction; download is always available.
type Capabilities struct {
	Download bool `json:"download"`
	Copy     bool `json:"copy"`
	Share    bool `json:"share"`
}

func (c Capabilities) allows(action Action) bool {
	switch action {
	case ActionDownload:
		return c.Download
	case ActionCopy:
		return c.Copy
	case ActionShare:
		return c.Share
	default:
		return false
	}
}

// Artifact is a rendered invoice image held for a session until dispatched
// or dismissed.
type Artifact struct {
	Order    order.Data
	Filename string
	MimeType string
	PNG      []byte
}

// DispatchResult is what a dispatch action hands back to the transport layer.
type DispatchResult struct {
	Action   Action
	State    State
	Filename string
	MimeType string
	PNG      []byte
	Payload  string
	Message  string
}

type session struct {
	mu       sync.Mutex
	quote    shipping.Quote
	hasQuote bool
	state    State
	artifact *Artifact
	inflight map[Action]bool

	// lastSeen is guarded by Service.mu, not session.mu.
	lastSeen time.Time
}

func newSession() *session {
	return &session{state: StateIdle, inflight: make(map[Action]bool)}
}

// Service owns per-session checkout state: the last accepted shipping quote,
// the invoice state machine, and the rendered artifact.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*session

	store    config.StoreConfig
	caps     Capabilities
	renderer RenderTarget
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(store config.StoreConfig, checkout config.CheckoutConfig, renderer RenderTarget, m *metrics.StorefrontMetrics, logg *logger.Logger) *Service {
	return &Service{
		sessions: make(map[string]*session),
		store:    store,
		caps: Capabilities{
			Download: true,
			Copy:     checkout.EnableClipboard,
			Share:    checkout.EnableShare,
		},
		renderer: renderer,
		metrics:  m,
		logg:     logg,
		now:      time.Now,
	}
}

// Capabilities reports the dispatch actions probed at construction.
func (s *Service) Capabilities() Capabilities { return s.caps }

// session creates the entry on first use. Only paths that store state call
// it; read paths use peek so idle visitors never allocate an entry.
func (s *Service) session(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = newSession()
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

func (s *Service) peek(sessionID string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// SetQuote records an accepted shipping quote for the session. A fresh quote
// clears any stale artifact so the next invoice reflects the new totals.
func (s *Service) SetQuote(sessionID string, quote shipping.Quote) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.quote = quote
	sess.hasQuote = true
	sess.artifact = nil
	sess.state = StateIdle
}

// Reset drops the session's quote, artifact and state. Called when the cart
// is reopened so a stale quote cannot leak into a new order. A session that
// holds nothing is already reset, so nothing is allocated for it.
func (s *Service) Reset(sessionID string) {
	sess, ok := s.peek(sessionID)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.quote = shipping.Quote{}
	sess.hasQuote = false
	sess.artifact = nil
	sess.state = StateIdle
}

// Dispose removes all checkout state for the session.
func (s *Service) Dispose(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// EvictIdle removes sessions that have not been touched within the TTL and
// reports how many were dropped. Sessions only live in memory; there is no
// durable slot behind them, so eviction simply forgets the quote and artifact.
func (s *Service) EvictIdle(idleTTL time.Duration) int {
	if idleTTL <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idleTTL)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live checkout sessions.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StateOf reports the session's current invoice state. Unknown sessions are
// idle by definition and are not created by the lookup.
func (s *Service) StateOf(sessionID string) State {
	sess, ok := s.peek(sessionID)
	if !ok {
		return StateIdle
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

func (s *Service) gate(sess *session, store *cart.Store) (order.Data, error) {
	if len(store.Items()) == 0 {
		return order.Data{}, errors.New(errors.CodeValidation, "cart is empty")
	}
	if !sess.hasQuote || sess.quote.Cost <= 0 {
		return order.Data{}, errors.New(errors.CodeValidation, "hitung ongkir terlebih dahulu")
	}
	return order.FormatOrderData(store.Items(), store.TotalPrice(), sess.quote.Cost, sess.quote.Label), nil
}

// BuildLink assembles the order and returns the WhatsApp deep link carrying
// the full order message. Refused while no positive shipping quote is held.
func (s *Service) BuildLink(ctx context.Context, sessionID string, store *cart.Store) (string, order.Data, error) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	data, err := s.gate(sess, store)
	if err != nil {
		return "", order.Data{}, err
	}

	link := DeepLink(s.store.WhatsAppNumber, BuildOrderMessage(data))
	ctx = s.logg.WithOrderID(ctx, data.OrderID)
	s.logg.Info(ctx, "built whatsapp order link")
	return link, data, nil
}

// GenerateInvoice assembles the order, rasterizes the invoice image and holds
// it as the session's artifact. Allowed from any state so an invoice can be
// regenerated after a dispatch.
func (s *Service) GenerateInvoice(ctx context.Context, sessionID string, store *cart.Store) (order.Data, error) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	data, err := s.gate(sess, store)
	if err != nil {
		return order.Data{}, err
	}

	sess.state = StateGenerating
	started := s.now()

	cmds := BuildInvoiceCommands(data, s.store.Name)
	png, err := s.renderer.Render(invoiceWidth, InvoiceHeight(len(data.Items)), cmds)
	if err != nil {
		sess.state = StateIdle
		s.metrics.ObserveArtifactDuration("invoice", s.now().Sub(started))
		return order.Data{}, errors.Wrap(errors.CodeDependency, err, "render invoice")
	}

	sess.artifact = &Artifact{
		Order:    data,
		Filename: fmt.Sprintf("invoice-%s.png", data.OrderID),
		MimeType: "image/png",
		PNG:      png,
	}
	s.metrics.ObserveArtifactDuration("invoice", s.now().Sub(started))

	ctx = s.logg.WithOrderID(ctx, data.OrderID)
	s.logg.Info(ctx, "generated invoice artifact")
	return data, nil
}

// Dispatch hands the held artifact out through one action. Each action is
// guarded by its own in-flight flag, so a slow share does not block a
// download, and a failed action leaves the artifact in place for retry.
func (s *Service) Dispatch(ctx context.Context, sessionID string, action Action) (*DispatchResult, error) {
	if !s.caps.allows(action) {
		s.metrics.IncDispatch(string(action), "unsupported")
		return nil, errors.New(errors.CodeStateConflict, fmt.Sprintf("%s is not supported", action))
	}

	sess, ok := s.peek(sessionID)
	if !ok {
		s.metrics.IncDispatch(string(action), "missing_artifact")
		return nil, errors.New(errors.CodeStateConflict, "no invoice has been generated")
	}

	sess.mu.Lock()
	if sess.artifact == nil {
		sess.mu.Unlock()
		s.metrics.IncDispatch(string(action), "missing_artifact")
		return nil, errors.New(errors.CodeStateConflict, "no invoice has been generated")
	}
	if sess.inflight[action] {
		sess.mu.Unlock()
		s.metrics.IncDispatch(string(action), "inflight")
		return nil, errors.New(errors.CodeConflict, fmt.Sprintf("%s already in progress", action))
	}
	sess.inflight[action] = true
	artifact := sess.artifact
	sess.mu.Unlock()

	result, err := s.perform(action, artifact)

	sess.mu.Lock()
	delete(sess.inflight, action)
	if err == nil {
		sess.state = result.State
	}
	sess.mu.Unlock()

	if err != nil {
		s.metrics.IncDispatch(string(action), "error")
		s.logg.Error(ctx, "invoice dispatch failed", err)
		return nil, err
	}
	s.metrics.IncDispatch(string(action), "ok")
	return result, nil
}

func (s *Service) perform(action Action, artifact *Artifact) (*DispatchResult, error) {
	switch action {
	case ActionDownload:
		return &DispatchResult{
			Action:   ActionDownload,
			State:    StateDownloaded,
			Filename: artifact.Filename,
			MimeType: artifact.MimeType,
			PNG:      artifact.PNG,
		}, nil
	case ActionCopy:
		return &DispatchResult{
			Action:   ActionCopy,
			State:    StateCopied,
			Filename: artifact.Filename,
			MimeType: artifact.MimeType,
			Payload:  base64.StdEncoding.EncodeToString(artifact.PNG),
			Message:  BuildInvoiceFollowupMessage(artifact.Order, s.store.Name, false),
		}, nil
	case ActionShare:
		return &DispatchResult{
			Action:   ActionShare,
			State:    StateShared,
			Filename: artifact.Filename,
			MimeType: artifact.MimeType,
			Payload:  base64.StdEncoding.EncodeToString(artifact.PNG),
			Message:  BuildInvoiceFollowupMessage(artifact.Order, s.store.Name, true),
		}, nil
	default:
		return nil, errors.New(errors.CodeValidation, "unknown dispatch action")
	}
}

// Dismiss returns the session to idle and drops the held artifact. The quote
// survives so the customer can regenerate without re-quoting. Unknown
// sessions hold nothing to dismiss.
func (s *Service) Dismiss(sessionID string) {
	sess, ok := s.peek(sessionID)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.artifact = nil
	sess.state = StateIdle
}
