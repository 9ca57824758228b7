package metrics

// Metrics holds keyword provider usage for a time period.
type Metrics struct {
	providerRequests int64
	creditsUsed      int64
	cacheHits        int64
}

// New creates a Metrics snapshot.
func New(requests, credits, cacheHits int64) Metrics {
	return Metrics{providerRequests: requests, creditsUsed: credits, cacheHits: cacheHits}
}

// ProviderRequests returns the number of enrichment calls sent to the provider.
func (m Metrics) ProviderRequests() int64 { return m.providerRequests }

// CreditsUsed returns phrases billed by the provider.
func (m Metrics) CreditsUsed() int64 { return m.creditsUsed }

// CacheHits returns phrases answered from the metric cache.
func (m Metrics) CacheHits() int64 { return m.cacheHits }
