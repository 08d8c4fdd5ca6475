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

package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

const VerboseFlag = "verbose"

// Flag shared by every command to switch the logger to debug level.
var Verbose = &cli.BoolFlag{
	Name:    VerboseFlag,
	Aliases: []string{"v"},
	Usage:   "Enable debug logging",
}

func New(w io.Writer, verbose bool) (logger *slog.Logger) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Setup installs a stderr logger as the slog default so reports on stdout stay clean.
func Setup(verbose bool) (logger *slog.Logger) {
	logger = New(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}
