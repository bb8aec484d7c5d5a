package dummy

// NewNop returns a Transport that is already exhausted: every ReadSome
// call returns io.EOF immediately. Grounded on the teacher's NewNopClient
// — the transport a test reaches for when a collaborator needs something
// implementing Transport but no bytes ever actually flow.
func NewNop() *Transport {
	return New()
}
