package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ *ScanRecord) error           { return nil }
func (n *NoopRecorder) RecordBroadcast(_ *BroadcastEvent) error  { return nil }
func (n *NoopRecorder) RecentOpportunities(_ int) ([]OpportunityRecord, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
