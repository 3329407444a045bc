package dataset

// Observer receives progress events from the batch pipelines. Implementations must
// be safe for concurrent use.
type Observer interface {
	RowRead()
	RowSkipped(reason string)
	RecordWritten()
	CacheHit()
	CacheMiss()
	GameParsed()
	PositionsExtracted(n int)
}

// Skip reasons reported to Observer.RowSkipped.
const (
	SkipBlankFEN     = "blank_fen"
	SkipBadSide      = "bad_side"
	SkipMalformedFEN = "malformed_fen"
	SkipNoMoves      = "no_moves"
	SkipIllegalMove  = "illegal_move"
	SkipRating       = "rating"
	SkipTimeControl  = "time_control"
	SkipNoPGN        = "no_pgn"
	SkipBadPGN       = "bad_pgn"
)

type nopObserver struct{}

func (nopObserver) RowRead()               {}
func (nopObserver) RowSkipped(string)      {}
func (nopObserver) RecordWritten()         {}
func (nopObserver) CacheHit()              {}
func (nopObserver) CacheMiss()             {}
func (nopObserver) GameParsed()            {}
func (nopObserver) PositionsExtracted(int) {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
