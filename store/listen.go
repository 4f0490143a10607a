package store

import (
	"context"
	"time"

	"class-order/logging"
)

// changeChannel is raised by statement triggers on every orders/settings
// write, regardless of which client wrote.
const changeChannel = "classorder_changed"

const reconnectDelay = 3 * time.Second

// Watch delivers a tick whenever anything in the store changes. Ticks are
// coalesced: a pending tick that has not been consumed yet absorbs new
// ones, which is enough because consumers reload the full snapshot anyway.
// The channel is closed when ctx is done.
func (s *Store) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)
	go s.listen(ctx, ch)
	return ch
}

func (s *Store) listen(ctx context.Context, ch chan<- struct{}) {
	log := logging.GetLogger()
	defer close(ch)

	for {
		if ctx.Err() != nil {
			return
		}
		conn, err := s.pool.Acquire(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warnf("store watch: acquire connection: %v", err)
			sleep(ctx, reconnectDelay)
			continue
		}
		if _, err := conn.Exec(ctx, "LISTEN "+changeChannel); err != nil {
			conn.Release()
			if ctx.Err() != nil {
				return
			}
			log.Warnf("store watch: listen: %v", err)
			sleep(ctx, reconnectDelay)
			continue
		}

		for {
			_, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				conn.Release()
				if ctx.Err() != nil {
					return
				}
				log.Warnf("store watch: connection lost, reconnecting: %v", err)
				sleep(ctx, reconnectDelay)
				break
			}
			select {
			case ch <- struct{}{}:
			default: // a tick is already pending
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
