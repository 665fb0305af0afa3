// Package classifier assigns an intent label to document text. The
// primary tier asks an external zero-shot model to rank a fixed candidate
// set; any primary failure degrades to an ordered keyword scan.
package classifier

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/intakehq/document-router-api/internal/models"
	"github.com/intakehq/document-router-api/internal/utils"
)

// CandidateLabels is the fixed label set offered to the zero-shot model.
var CandidateLabels = []string{"Invoice", "RFQ", "Complaint", "Regulation"}

// Provider hands out the zero-shot client, constructing it lazily on
// first use. Construction failures leave the client unavailable and are
// retried on later calls; callers get nil while it stays unavailable.
type Provider struct {
	mu      sync.Mutex
	client  ZeroShot
	factory func() (ZeroShot, error)
	logger  *utils.Logger
}

func NewProvider(factory func() (ZeroShot, error), logger *utils.Logger) *Provider {
	return &Provider{factory: factory, logger: logger}
}

func (p *Provider) Get() ZeroShot {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		client, err := p.factory()
		if err != nil {
			p.logger.Warn("Zero-shot classifier unavailable", "error", err)
			return nil
		}
		p.client = client
	}

	return p.client
}

// Classifier resolves document intent via the zero-shot tier with a
// keyword fallback.
type Classifier struct {
	provider *Provider
	logger   *utils.Logger
}

func New(provider *Provider, logger *utils.Logger) *Classifier {
	return &Classifier{provider: provider, logger: logger}
}

// Classify returns the intent for text. It never fails: any zero-shot
// problem is logged and the keyword fallback answers instead.
func (c *Classifier) Classify(ctx context.Context, text string) models.Intent {
	intent, err := c.classifyZeroShot(ctx, text)
	if err != nil {
		c.logger.Warn("Zero-shot classification failed, using keyword fallback", "error", err)
		return KeywordFallback(text)
	}
	return intent
}

func (c *Classifier) classifyZeroShot(ctx context.Context, text string) (models.Intent, error) {
	client := c.provider.Get()
	if client == nil {
		return "", fmt.Errorf("zero-shot classifier not available")
	}

	labels, err := client.Rank(ctx, text, CandidateLabels)
	if err != nil {
		return "", err
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("zero-shot classifier returned no labels")
	}

	return models.Intent(labels[0]), nil
}

// KeywordFallback scans lowercased text against ordered keyword rules;
// the first matching rule wins and no match yields Unknown.
func KeywordFallback(text string) models.Intent {
	content := strings.ToLower(text)

	switch {
	case containsAny(content, "quote", "rfq", "request for quote"):
		return models.IntentRFQ
	case containsAny(content, "invoice", "amount", "vendor"):
		return models.IntentInvoice
	case containsAny(content, "complaint", "issue", "problem", "damaged"):
		return models.IntentComplaint
	case containsAny(content, "order", "purchase order"):
		return models.IntentPurchaseOrder
	case containsAny(content, "support", "help", "ticket"):
		return models.IntentSupportTicket
	default:
		return models.IntentUnknown
	}
}

func containsAny(content string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(content, keyword) {
			return true
		}
	}
	return false
}
