package invoice

import (
	"fmt"
	"strings"

	"github.com/zamorem/isdoc-gen/pkg/models"
)

// ResolveRecipient selects the customer of an invoice.
//
// A key present in cfg.Recipients wins. Without a key the first declared
// recipient is used. Otherwise the legacy single recipient applies, if set.
func ResolveRecipient(cfg *models.Config, key string) (models.CompanyConfig, error) {
	const op = "ResolveRecipient"

	if key != "" {
		if company, ok := cfg.Recipients.Lookup(key); ok {
			return company, nil
		}
	} else if company, ok := cfg.Recipients.First(); ok {
		return company, nil
	}

	if cfg.Recipient != nil {
		return *cfg.Recipient, nil
	}

	details := "configure recipients or recipient"
	if key != "" {
		details = fmt.Sprintf("recipient_id %q not in recipients [%s]", key, strings.Join(cfg.Recipients.Keys(), ", "))
	}
	return models.CompanyConfig{}, NewConfigurationError(op, "recipients", ErrNoRecipient, details)
}
