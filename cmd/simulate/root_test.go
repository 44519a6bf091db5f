package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// dataDir lays out five locations. Package 9 is listed at B and corrected to D.
func dataDir(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "addresses.csv", `id,name,address
0,HQ,1 Hub Rd
1,A,10 A St
2,B,20 B St
3,C,30 C St
4,D,40 D St
`)
	writeFile(t, dir, "distances.csv", `,HQ,A,B,C,D
HQ,0
A,3,0
B,7,4,0
C,5,2,6,0
D,4,5,2,3,0
`)
	writeFile(t, dir, "packages.csv", `id,address,city,state,zip,deadline,weight,notes
1,10 A St,Salt Lake City,UT,84101,10:30 AM,1,
2,30 C St,Salt Lake City,UT,84101,EOD,1,
3,20 B St,Salt Lake City,UT,84101,EOD,1,
9,20 B St,Salt Lake City,UT,84101,EOD,2,Wrong address listed
10,10 A St,Salt Lake City,UT,84101,EOD,1,
`)
	scenario := writeFile(t, dir, "scenario.yaml", `depot: HQ
date: "2021-07-01"
vehicles:
  - truck_id: 1
    departure: "08:00"
    packages: [1, 2]
  - truck_id: 2
    departure: "09:15"
    packages: [3]
  - truck_id: 3
    departure: "11:00"
    packages: [9, 10]
correction:
  package_id: 9
  cutover: "10:20"
  destination: D
  street: 40 D St
  weight: 5
  wrong_address_note: Wrong address listed
`)
	return dir, scenario
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSimulate_Accepted(t *testing.T) {
	dir, scenario := dataDir(t)

	out, err := execute(t, "",
		"--data-dir", dir, "--scenario", scenario, "--correct-address", "yes",
		"--start", "10:00", "--end", "10:30", "--package", "9")
	require.NoError(t, err)

	assert.Contains(t, out, "11:26:40: Truck 3 Delivering packages [9] to ['D']")
	assert.Contains(t, out, "Combined total distance of all trucks: 36.00 miles")
	assert.Contains(t, out, "Package statuses between 10:00:00 and 10:30:00")
	assert.Contains(t, out, "Package 9: 20 B St", "shown as listed before the correction")
	assert.Contains(t, out, "\t10:00:00 AT_HUB")
	assert.NotContains(t, out, "Package 1:")
}

func TestSimulate_PromptDeclined(t *testing.T) {
	dir, scenario := dataDir(t)

	out, err := execute(t, "maybe\nno\n",
		"--data-dir", dir, "--scenario", scenario, "--correct-address", "ask",
		"--start", "11:00", "--end", "12:00")
	require.NoError(t, err)

	assert.Contains(t, out, "Currently it is 11:10, there is an update to package #9!")
	assert.Contains(t, out, "Invalid response.")
	assert.Contains(t, out, "Combined total distance of all trucks: 38.00 miles")
	assert.Contains(t, out, "\t11:10:00 Wrong address listed")
	assert.Contains(t, out, "\t11:23:20 DELIVERED")
}

func TestSimulate_PromptWithoutAnswer(t *testing.T) {
	dir, scenario := dataDir(t)

	out, err := execute(t, "",
		"--data-dir", dir, "--scenario", scenario, "--correct-address", "ask")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truck 3")
	assert.Contains(t, out, "Truck 3 stopped early")
	assert.Contains(t, out, "Truck 1 finished at 08:33:20")
}

func TestSimulate_BadFlags(t *testing.T) {
	dir, scenario := dataDir(t)

	_, err := execute(t, "", "--data-dir", dir, "--scenario", scenario, "--correct-address", "maybe")
	assert.ErrorContains(t, err, "--correct-address")

	_, err = execute(t, "", "--data-dir", dir, "--scenario", scenario, "--correct-address", "yes", "--start", "9am")
	assert.ErrorContains(t, err, "--start")

	_, err = execute(t, "", "--data-dir", dir, "--scenario", scenario, "--correct-address", "yes", "--package", "77")
	assert.Error(t, err)
}

func TestParseWindow(t *testing.T) {
	_, _, ok, err := parseWindow("", "")
	require.NoError(t, err)
	assert.False(t, ok)

	s, e, ok, err := parseWindow("09:30", "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9*time.Hour+30*time.Minute, s)
	assert.Equal(t, s, e)

	_, _, _, err = parseWindow("10:00", "09:00")
	assert.Error(t, err)
}
