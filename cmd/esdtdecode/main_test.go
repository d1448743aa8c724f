package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/0xAtelerix/esdt/library/esdt"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestDecodeArgs(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "", "decode",
		"ESDTTransfer@5745474c44@0de0b6b3a7640000",
		"someOtherFunction@01@02",
		"ESDTNFTTransfer@4d45582d343535633537@0a@01",
	)
	require.NoError(t, err)
	require.Equal(t, "WEGLD\t1000000000000000000\n-\nMEX-455c57\t1\n", out)
}

func TestDecodeStdinJSON(t *testing.T) {
	t.Parallel()

	stdin := "ESDTTransfer@5745474c44@0de0b6b3a7640000\n\nESDTTransfer@zz@01\n"

	out, err := runCmd(t, stdin, "decode", "--format", "json", "--decimals", "18")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.JSONEq(t, `{"data":"ESDTTransfer@5745474c44@0de0b6b3a7640000","tokenId":"WEGLD","amount":"1000000000000000000","denominated":"1"}`, lines[0])
	require.JSONEq(t, `{"data":"","tokenId":"","amount":""}`, lines[1])
	require.JSONEq(t, `{"data":"ESDTTransfer@zz@01","tokenId":"","amount":""}`, lines[2])
}

func TestDecodeCBOR(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "", "decode", "--format", "cbor", "ESDTTransfer@5745474c44@0a")
	require.NoError(t, err)

	var res result
	require.NoError(t, cbor.Unmarshal([]byte(out), &res))
	require.Equal(t, result{Data: "ESDTTransfer@5745474c44@0a", TokenID: "WEGLD", Amount: "10"}, res)
}

func TestDecodeTextDecimals(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "", "decode", "--decimals", "2", "ESDTTransfer@5745474c44@0a")
	require.NoError(t, err)
	require.Equal(t, "WEGLD\t10\t0.1\n", out)
}

func TestDecodeBadFlags(t *testing.T) {
	t.Parallel()

	_, err := runCmd(t, "", "decode", "--format", "xml", "ESDTTransfer@5745474c44@0a")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = runCmd(t, "", "decode", "--follow", "x.log", "ESDTTransfer@5745474c44@0a")
	require.ErrorIs(t, err, ErrFollowWithArgs)

	_, err = runCmd(t, "", "decode", "--log-level", "loud", "ESDTTransfer@5745474c44@0a")
	require.Error(t, err)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "", "encode", "WEGLD", "1000000000000000000")
	require.NoError(t, err)
	require.Equal(t, "ESDTTransfer@5745474c44@0de0b6b3a7640000\n", out)

	out, err = runCmd(t, "", "encode", "MEX-455c57", "1", "--nonce", "10")
	require.NoError(t, err)
	require.Equal(t, "ESDTNFTTransfer@4d45582d343535633537@0a@01\n", out)

	_, err = runCmd(t, "", "encode", "WEGLD", "1.5")
	require.Error(t, err)
}

func TestPrinterJSONWithoutDecimals(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	p, err := newPrinter(&buf, formatJSON, -1)
	require.NoError(t, err)
	require.NoError(t, p.print("d", esdt.TokenAmount{TokenID: "T", Amount: "1"}))

	var res map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	require.NotContains(t, res, "denominated")

	_, err = newPrinter(&buf, formatText, 19)
	require.Error(t, err)
}

func TestFollowLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "calldata.log")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\n"), 0o600))

	var (
		mu    sync.Mutex
		lines []string
	)

	snapshot := func() []string {
		mu.Lock()
		defer mu.Unlock()

		return append([]string(nil), lines...)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- followLines(ctx, path, func(line string) error {
			mu.Lock()
			defer mu.Unlock()

			lines = append(lines, line)

			return nil
		})
	}()

	require.Eventually(t, func() bool { return len(snapshot()) == 2 }, 5*time.Second, 10*time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)

	_, err = f.WriteString("thi")
	require.NoError(t, err)

	_, err = f.WriteString("rd\r\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool { return len(snapshot()) == 3 }, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, []string{"first", "second", "third"}, snapshot())

	cancel()
	require.NoError(t, <-done)
}

func TestFollowMissingFile(t *testing.T) {
	t.Parallel()

	err := followLines(context.Background(), filepath.Join(t.TempDir(), "missing"), func(string) error { return nil })
	require.ErrorIs(t, err, os.ErrNotExist)
}
