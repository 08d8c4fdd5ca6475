// Copyright (C) 2025 ZedCloud Org.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package syncutils

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Workers runs jobs with bounded concurrency and collects their errors.
type Workers struct {
	wg        sync.WaitGroup
	available chan struct{}

	mu   sync.Mutex
	errs []error
}

func NewWorkers(n int) (w *Workers) {
	n = max(n, 1)
	w = &Workers{
		available: make(chan struct{}, n),
	}
	for range n {
		w.available <- struct{}{}
	}
	return w
}

func (w *Workers) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errs = append(w.errs, err)
}

// Go blocks until a worker is free and runs f on it.
func (w *Workers) Go(f func() error) {
	<-w.available

	w.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("worker panicked", "error-msg", r)
				w.fail(fmt.Errorf("worker panicked: %v", r))
			}
			w.available <- struct{}{}
		}()

		err := f()
		if err != nil {
			w.fail(err)
		}
	})
}

// Wait for the submitted jobs and return their errors joined.
func (w *Workers) Wait() (err error) {
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	return errors.Join(w.errs...)
}
