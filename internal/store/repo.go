package store

import (
	"context"
	"time"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/tracker"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProgressRepo persists one Word Progress Record per word.
type ProgressRepo interface {
	// Get returns the record for wordID, or a fresh never-reviewed record
	// when none is stored.
	Get(ctx context.Context, wordID int) (spacedrep.WordProgress, error)

	// List returns records for wordIDs in the given order, filling in
	// never-reviewed records for words without one.
	List(ctx context.Context, wordIDs []int) ([]spacedrep.WordProgress, error)

	// Save inserts or replaces the record for wp.WordID.
	Save(ctx context.Context, wp spacedrep.WordProgress) error

	// Reset deletes every stored record.
	Reset(ctx context.Context) error
}

// LedgerRepo is the persistent category completion ledger.
// It satisfies tracker.Ledger.
type LedgerRepo interface {
	tracker.Ledger

	// AllCompletions returns the count of every category completed at least once.
	AllCompletions(ctx context.Context) (map[string]int, error)
}

// Category event actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
	ActionUnlock   = "unlock"
)

// ReviewEventData captures one rated word.
type ReviewEventData struct {
	SessionID     string
	CategoryID    string
	WordID        int
	Rating        spacedrep.Rating
	MasteryBefore int
	MasteryAfter  int
	NextReview    *time.Time
}

// CategoryEventData captures a category session transition.
type CategoryEventData struct {
	SessionID     string
	CategoryID    string
	Action        string
	WordsReviewed int
	TotalWords    int
	DurationSecs  int
}

// CategoryEvent is a stored CategoryEventData.
type CategoryEvent struct {
	Sequence  int64
	Timestamp time.Time
	CategoryEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLMRequestEventData.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates llm events by purpose or by model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendReviewEvent records a rated word.
	AppendReviewEvent(ctx context.Context, data ReviewEventData) error

	// AppendCategoryEvent records a category session transition.
	AppendCategoryEvent(ctx context.Context, data CategoryEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryCategoryEvents returns category events in sequence order.
	QueryCategoryEvents(ctx context.Context, opts QueryOpts) ([]CategoryEvent, error)

	// ReviewCounts returns the number of reviews per rating within opts.
	ReviewCounts(ctx context.Context, opts QueryOpts) (map[spacedrep.Rating]int, error)

	// QueryLLMEvents returns llm request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one llm request event, or nil if id is unknown.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose sums llm usage per request purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel sums llm usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// LastSequence returns the most recently assigned sequence number.
	LastSequence(ctx context.Context) (int64, error)
}

// SnapshotData captures resumable learner state at a point in time.
type SnapshotData struct {
	Version int            `json:"version"`
	Tracker *tracker.State `json:"tracker,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// CategoryRecord is a learner-created category.
type CategoryRecord struct {
	ID        string
	Name      string
	Emoji     string
	CreatedAt time.Time
}

// WordRecord is a learner-created word.
type WordRecord struct {
	ID         int
	CategoryID string
	Text       string
	Definition string
	Example    string
	Emoji      string
	CreatedAt  time.Time
}

// WordRepo stores custom categories and words added after install.
type WordRepo interface {
	// SaveCategory inserts or renames a custom category.
	SaveCategory(ctx context.Context, c CategoryRecord) error

	// ListCategories returns custom categories ordered by creation.
	ListCategories(ctx context.Context) ([]CategoryRecord, error)

	// SaveWords inserts words atomically. Ids must be unused.
	SaveWords(ctx context.Context, words []WordRecord) error

	// ListWords returns custom words ordered by id; an empty categoryID
	// lists every category.
	ListWords(ctx context.Context, categoryID string) ([]WordRecord, error)

	// NextWordID returns an id above every stored custom word and at least floor.
	NextWordID(ctx context.Context, floor int) (int, error)
}
