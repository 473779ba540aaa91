// Package intent converts free-text savings edits into structured
// intents. It is the parser boundary in front of the engine: the engine
// only ever receives tagged domain.SavingsIntent values, never raw
// strings.
package intent

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vinod-lakhani/planengine/internal/domain"
)

var categoryAliases = map[string]domain.SavingsCategory{
	"emergency fund":     domain.CategoryEmergencyFund,
	"emergency savings":  domain.CategoryEmergencyFund,
	"emergency":          domain.CategoryEmergencyFund,
	"rainy day fund":     domain.CategoryEmergencyFund,
	"brokerage":          domain.CategoryBrokerage,
	"investing":          domain.CategoryBrokerage,
	"investments":        domain.CategoryBrokerage,
	"taxable account":    domain.CategoryBrokerage,
	"debt":               domain.CategoryHighAPRDebt,
	"extra debt":         domain.CategoryHighAPRDebt,
	"debt payments":      domain.CategoryHighAPRDebt,
	"high apr debt":      domain.CategoryHighAPRDebt,
	"credit card":        domain.CategoryHighAPRDebt,
	"retirement":         domain.CategoryRetirementTaxAdv,
	"ira":                domain.CategoryRetirementTaxAdv,
	"roth":               domain.CategoryRetirementTaxAdv,
	"401k extra":         domain.CategoryRetirementTaxAdv,
	"hsa":                domain.CategoryHSA,
	"health savings":     domain.CategoryHSA,
	"match":              domain.CategoryMatch401k,
	"401k match":         domain.CategoryMatch401k,
	"employer match":     domain.CategoryMatch401k,
}

var (
	amountPattern = `\$?\s*([0-9]+(?:\.[0-9]{1,2})?)`

	reSet       = regexp.MustCompile(`^(?:set|make|change)\s+(?:my\s+)?(.+?)\s+to\s+` + amountPattern + `(?:\s+(?:a|per)\s+month)?$`)
	reAdd       = regexp.MustCompile(`^(?:add|put)\s+` + amountPattern + `\s+(?:more\s+)?(?:to|into|toward)\s+(?:my\s+)?(.+?)$`)
	reIncrease  = regexp.MustCompile(`^(?:increase|raise|bump)\s+(?:my\s+)?(.+?)\s+by\s+` + amountPattern + `$`)
	reReduce    = regexp.MustCompile(`^(?:reduce|cut|lower|decrease)\s+(?:my\s+)?(.+?)\s+by\s+` + amountPattern + `$`)
	reTakeFrom  = regexp.MustCompile(`^(?:take|move)\s+` + amountPattern + `\s+(?:from|out of)\s+(?:my\s+)?(.+?)$`)
	reEliminate = regexp.MustCompile(`^(?:stop(?:\s+contributing)?(?:\s+to)?|eliminate|drop|zero\s+out)\s+(?:my\s+)?(.+?)(?:\s+contributions?)?$`)
)

// Parse converts one free-text edit into a structured intent. Text that
// does not match a recognized phrasing is an error; nothing is guessed.
func Parse(text string) (domain.SavingsIntent, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.TrimSuffix(s, ".")

	if s == "" {
		return domain.SavingsIntent{}, errors.New("empty intent text")
	}
	if s == "reset" || s == "start over" || s == "reset my plan" {
		return domain.SavingsIntent{Kind: domain.IntentReset}, nil
	}

	if m := reSet.FindStringSubmatch(s); m != nil {
		return buildIntent(domain.IntentSetTarget, m[1], m[2], false)
	}
	if m := reAdd.FindStringSubmatch(s); m != nil {
		return buildIntent(domain.IntentDelta, m[2], m[1], false)
	}
	if m := reIncrease.FindStringSubmatch(s); m != nil {
		return buildIntent(domain.IntentDelta, m[1], m[2], false)
	}
	if m := reReduce.FindStringSubmatch(s); m != nil {
		return buildIntent(domain.IntentDelta, m[1], m[2], true)
	}
	if m := reTakeFrom.FindStringSubmatch(s); m != nil {
		return buildIntent(domain.IntentDelta, m[2], m[1], true)
	}
	if m := reEliminate.FindStringSubmatch(s); m != nil {
		cat, err := matchCategory(m[1])
		if err != nil {
			return domain.SavingsIntent{}, err
		}
		return domain.SavingsIntent{Kind: domain.IntentEliminate, Category: cat}, nil
	}

	return domain.SavingsIntent{}, errors.Errorf("unrecognized savings edit: %q", text)
}

func buildIntent(kind domain.IntentKind, rawCategory, rawAmount string, negate bool) (domain.SavingsIntent, error) {
	cat, err := matchCategory(rawCategory)
	if err != nil {
		return domain.SavingsIntent{}, err
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return domain.SavingsIntent{}, errors.Wrapf(err, "bad amount %q", rawAmount)
	}
	if negate {
		amount = amount.Neg()
	}
	return domain.SavingsIntent{Kind: kind, Category: cat, Amount: amount}, nil
}

func matchCategory(raw string) (domain.SavingsCategory, error) {
	key := strings.TrimSpace(raw)
	key = strings.TrimPrefix(key, "the ")
	if cat, ok := categoryAliases[key]; ok {
		return cat, nil
	}
	return "", errors.Errorf("unknown savings category %q", raw)
}
