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

package adsauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// CallbackServer receives the authorization redirect on the loopback interface.
type CallbackServer struct {
	mu            sync.Mutex
	expectedState string
	codeCh        chan string
	errCh         chan error
	server        *http.Server
	listener      net.Listener
}

func NewCallbackServer(expectedState string) (s *CallbackServer) {
	return &CallbackServer{
		expectedState: expectedState,
		codeCh:        make(chan string, 1),
		errCh:         make(chan error, 1),
	}
}

// Start listens on 127.0.0.1:port. Port 0 picks a free one.
func (s *CallbackServer) Start(port int) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleCallback)
	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		err := s.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.fail(err)
		}
	}()
	return nil
}

func (s *CallbackServer) fail(err error) {
	select {
	case s.errCh <- err:
	default:
	}
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	w.Header().Set("Content-Type", "text/html")

	if errParam := query.Get("error"); errParam != "" {
		s.fail(fmt.Errorf("oauth error: %s - %s", errParam, query.Get("error_description")))
		fmt.Fprint(w, page("Authorization failed", query.Get("error_description")))
		return
	}

	if state := query.Get("state"); state != s.expectedState {
		s.fail(fmt.Errorf("state mismatch: got %q", state))
		fmt.Fprint(w, page("Authorization failed", "Invalid state parameter."))
		return
	}

	code := query.Get("code")
	if code == "" {
		s.fail(errors.New("no authorization code received"))
		fmt.Fprint(w, page("Authorization failed", "No code received."))
		return
	}

	select {
	case s.codeCh <- code:
	default:
	}
	fmt.Fprint(w, page("Authorization successful", "You can close this window and return to the terminal."))
}

func (s *CallbackServer) WaitForCode(ctx context.Context, timeout time.Duration) (code string, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case code = <-s.codeCh:
		return code, nil
	case err = <-s.errCh:
		return "", err
	case <-ctx.Done():
		return "", errors.New("timeout waiting for authorization callback")
	}
}

func (s *CallbackServer) Stop() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *CallbackServer) RedirectURI() (uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return fmt.Sprintf("http://localhost:%d/", s.listener.Addr().(*net.TCPAddr).Port)
}

func page(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Google Ads token</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 15%%">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}

// RunLoopback serves the redirect locally instead of asking for the code to be pasted.
func (f *Flow) RunLoopback(ctx context.Context, port int, timeout time.Duration, openBrowser bool) (creds *Credentials, err error) {
	state, err := NewState()
	if err != nil {
		return nil, err
	}

	server := NewCallbackServer(state)
	err = server.Start(port)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	defer server.Stop()

	f.Config.RedirectURL = server.RedirectURI()
	url := f.AuthURL(state)

	fmt.Fprintln(f.Out, "\nOpen this URL in your browser:")
	fmt.Fprintf(f.Out, "\n%s\n\n", url)
	if openBrowser {
		if err := OpenBrowser(url); err != nil {
			fmt.Fprintf(f.Out, "Could not open the browser automatically: %v\n", err)
		}
	}
	fmt.Fprintf(f.Out, "Waiting for the authorization redirect on %s ...\n", f.Config.RedirectURL)

	code, err := server.WaitForCode(ctx, timeout)
	if err != nil {
		PrintRemediation(f.Out, err)
		return nil, err
	}
	return f.finish(ctx, code)
}

func OpenBrowser(url string) (err error) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
