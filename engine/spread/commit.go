package spread

import (
	"fmt"
	"sort"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/engine/panel"
)

// CommitPolicy decides how delayed rotation commits are armed.
type CommitPolicy int

const (
	// CommitPolicySingle throttles commits to at most one pending per panel. Arming is skipped while a
	// commit is pending, so nothing is ever cancelled; the next commit is armed on the first frame after
	// the previous one fires and carries the candidate captured then. A committed yaw can be up to about
	// twice the commit delay old.
	CommitPolicySingle CommitPolicy = iota

	// CommitPolicyQueue arms a commit on every frame. Commits for a panel fire in arming order, so the
	// most recently armed one to come due wins. A panel never holds more than delay/frame-interval commits,
	// and a committed yaw is about one commit delay old.
	CommitPolicyQueue
)

// String returns the configuration name of the policy.
func (p CommitPolicy) String() string {
	switch p {
	case CommitPolicySingle:
		return "single"
	case CommitPolicyQueue:
		return "queue"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseCommitPolicy converts "single" or "queue" into a CommitPolicy.
func ParseCommitPolicy(s string) (CommitPolicy, error) {
	switch s {
	case "single", "":
		return CommitPolicySingle, nil
	case "queue":
		return CommitPolicyQueue, nil
	}
	return CommitPolicySingle, &panel.ConfigurationError{Field: "commit_policy", Reason: fmt.Sprintf("unknown policy %q", s)}
}

// commit is one armed rotation-target overwrite.
type commit struct {
	panel  int
	fireAt time.Time
	yaw    float32
	seq    uint64
}

// commitQueue holds the armed commits of one driver. It is owned by the frame loop and never
// touched from another goroutine.
type commitQueue struct {
	policy  CommitPolicy
	pending []commit
	due     []commit
	counts  []int
	seq     uint64
}

func newCommitQueue(policy CommitPolicy, panels int) *commitQueue {
	return &commitQueue{
		policy: policy,
		counts: make([]int, panels),
	}
}

// arm schedules a commit of yaw for rec at now+rec.CommitDelay, subject to the policy.
// Reports whether a commit was armed.
func (q *commitQueue) arm(rec *panel.Record, now time.Time, yaw float32) bool {
	if q.policy == CommitPolicySingle && rec.PendingCommitArmed {
		return false
	}
	q.seq++
	q.pending = append(q.pending, commit{
		panel:  rec.Index,
		fireAt: now.Add(rec.CommitDelay),
		yaw:    yaw,
		seq:    q.seq,
	})
	q.counts[rec.Index]++
	rec.PendingCommitArmed = true
	return true
}

// fire applies every commit due at or before now in fire-time order and returns how many fired.
func (q *commitQueue) fire(now time.Time, records []*panel.Record) int {
	if len(q.pending) == 0 {
		return 0
	}

	q.due = q.due[:0]
	kept := q.pending[:0]
	for _, c := range q.pending {
		if c.fireAt.After(now) {
			kept = append(kept, c)
			continue
		}
		q.due = append(q.due, c)
	}
	q.pending = kept

	sort.Slice(q.due, func(a, b int) bool {
		if q.due[a].fireAt.Equal(q.due[b].fireAt) {
			return q.due[a].seq < q.due[b].seq
		}
		return q.due[a].fireAt.Before(q.due[b].fireAt)
	})

	for _, c := range q.due {
		rec := records[c.panel]
		rec.TargetYaw = c.yaw
		q.counts[c.panel]--
		if q.counts[c.panel] == 0 {
			rec.PendingCommitArmed = false
		}
	}
	return len(q.due)
}

// cancel drops every pending commit, clears the armed flags and returns how many were dropped.
func (q *commitQueue) cancel(records []*panel.Record) int {
	n := len(q.pending)
	q.pending = q.pending[:0]
	for i := range q.counts {
		q.counts[i] = 0
	}
	for _, rec := range records {
		rec.PendingCommitArmed = false
	}
	return n
}

func (q *commitQueue) len() int {
	return len(q.pending)
}
