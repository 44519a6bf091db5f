// Package decision provides the address-correction deciders.
package decision

import (
	"bufio"
	"delivery-simulation-service/internal/domain"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Fixed answers every question the same way.
type Fixed bool

func (f Fixed) CorrectAddress(domain.Package, time.Time) (bool, error) {
	return bool(f), nil
}

// ErrNoAnswer is returned when input ends before a valid answer.
var ErrNoAnswer = errors.New("no answer")

// Prompt asks on Out and reads the answer from In, re-asking until it gets
// "yes" or "no".
type Prompt struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

func (p *Prompt) CorrectAddress(pkg domain.Package, at time.Time) (bool, error) {
	if p.scanner == nil {
		p.scanner = bufio.NewScanner(p.In)
	}

	fmt.Fprintf(p.Out, "Currently it is %s, there is an update to package #%d!\n", at.Format("15:04"), pkg.PackageID)
	fmt.Fprintf(p.Out, "Correct package #%d? Enter 'yes' or 'no'\n", pkg.PackageID)
	for {
		fmt.Fprint(p.Out, ">")
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return false, fmt.Errorf("read answer: %w", err)
			}
			return false, fmt.Errorf("read answer for package %d: %w", pkg.PackageID, ErrNoAnswer)
		}

		switch strings.ToLower(strings.TrimSpace(p.scanner.Text())) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}
		fmt.Fprintf(p.Out, "Invalid response. Correct the address for package #%d? Enter 'yes' or 'no'\n", pkg.PackageID)
	}
}
