package chat

import (
	"context"
	"sync"

	"github.com/edgard/mindfulbot/internal/database"
)

// PendingReply is the handle to a bot reply that is produced later by a
// deferred task. It resolves exactly once.
type PendingReply struct {
	done chan struct{}
	once sync.Once

	message *database.Message
	err     error
}

func newPendingReply() *PendingReply {
	return &PendingReply{done: make(chan struct{})}
}

func (p *PendingReply) resolve(message *database.Message, err error) {
	p.once.Do(func() {
		p.message = message
		p.err = err
		close(p.done)
	})
}

// Done is closed once the reply has been stored or has failed.
func (p *PendingReply) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the reply resolves or ctx ends. A cancelled wait does not
// cancel the reply itself; it is still produced and stored.
func (p *PendingReply) Wait(ctx context.Context) (*database.Message, error) {
	select {
	case <-p.done:
		return p.message, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
