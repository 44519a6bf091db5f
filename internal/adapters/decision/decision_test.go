package decision

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-simulation-service/internal/domain"
)

var tenTwenty = time.Date(2021, 7, 1, 10, 20, 0, 0, time.UTC)

func TestFixed(t *testing.T) {
	ok, err := Fixed(true).CorrectAddress(domain.Package{PackageID: 9}, tenTwenty)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Fixed(false).CorrectAddress(domain.Package{PackageID: 9}, tenTwenty)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrompt_RetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := &Prompt{In: strings.NewReader("maybe\n\n YES \n"), Out: &out}

	ok, err := p.CorrectAddress(domain.Package{PackageID: 9}, tenTwenty)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Currently it is 10:20, there is an update to package #9!")
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid response"))
}

func TestPrompt_No(t *testing.T) {
	p := &Prompt{In: strings.NewReader("no\n"), Out: &bytes.Buffer{}}

	ok, err := p.CorrectAddress(domain.Package{PackageID: 9}, tenTwenty)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrompt_EOF(t *testing.T) {
	p := &Prompt{In: strings.NewReader("later\n"), Out: &bytes.Buffer{}}

	_, err := p.CorrectAddress(domain.Package{PackageID: 9}, tenTwenty)
	assert.True(t, errors.Is(err, ErrNoAnswer))
}
