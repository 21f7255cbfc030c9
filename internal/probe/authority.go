package probe

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/avolkov/claimlens/internal/model"
)

// AuthorityClassifier classifies cited sources into authority tiers
type AuthorityClassifier struct {
	config       *model.SourcesConfig
	primaryMap   map[string]bool
	secondaryMap map[string]bool
	pathPatterns []*compiledPattern
}

type compiledPattern struct {
	pattern *regexp.Regexp
	tier    model.AuthorityTier
}

// NewAuthorityClassifier creates a new authority classifier
func NewAuthorityClassifier(config *model.SourcesConfig) *AuthorityClassifier {
	if config == nil {
		config = &model.DefaultConfig().Sources
	}

	classifier := &AuthorityClassifier{
		config:       config,
		primaryMap:   make(map[string]bool),
		secondaryMap: make(map[string]bool),
		pathPatterns: make([]*compiledPattern, 0),
	}

	for _, domain := range config.PrimaryDomains {
		classifier.primaryMap[domain] = true
	}

	for _, domain := range config.SecondaryDomains {
		classifier.secondaryMap[domain] = true
	}

	for _, pathPattern := range config.PathPatterns {
		if re, err := regexp.Compile(pathPattern.Pattern); err == nil {
			tier := model.TierTertiary
			switch strings.ToLower(pathPattern.Tier) {
			case "primary":
				tier = model.TierPrimary
			case "secondary":
				tier = model.TierSecondary
			}
			classifier.pathPatterns = append(classifier.pathPatterns, &compiledPattern{
				pattern: re,
				tier:    tier,
			})
		}
	}

	return classifier
}

// Classify classifies a URL into an authority tier
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.TierTertiary
	}

	host := parsed.Host
	path := parsed.Path

	// Remove port from host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	if matchesDomain(a.primaryMap, host) {
		return model.TierPrimary
	}

	if matchesDomain(a.secondaryMap, host) {
		return model.TierSecondary
	}

	for _, cp := range a.pathPatterns {
		if cp.pattern.MatchString(path) {
			return cp.tier
		}
	}

	// Government and academic TLDs carry primary authority
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// matchesDomain checks the host against the domain set, including subdomains
func matchesDomain(domains map[string]bool, host string) bool {
	if domains[host] {
		return true
	}
	for domain := range domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
