package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/SidddhantJain/QuietQuill/internal/accounts"
	"github.com/SidddhantJain/QuietQuill/internal/journal"
	"github.com/SidddhantJain/QuietQuill/internal/keyring"
	"github.com/SidddhantJain/QuietQuill/internal/logging"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	return &App{
		log:      testLogger(),
		accounts: accounts.NewService(accounts.NewInMemoryRepository()),
		repo:     journal.NewRepository(t.TempDir(), journal.NewMetadataStore(), testLogger()),
		reader:   bufio.NewReader(strings.NewReader("")),
	}
}

// stubIO replaces the input seams with queued answers and captures all
// user-facing output. Passwords are returned as fresh copies so command
// handlers can wipe them.
func stubIO(t *testing.T, texts []string, passwords []string, multilines []string) *[]string {
	t.Helper()

	origST, origGP, origGM, origPrint := getSimpleText, getPassword, getMultiline, printlnFn
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline, printlnFn = origST, origGP, origGM, origPrint
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.NotEmpty(t, texts, "unexpected text prompt")
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		require.NotEmpty(t, passwords, "unexpected password prompt")
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.NotEmpty(t, multilines, "unexpected multiline prompt")
		v := multilines[0]
		multilines = multilines[1:]
		return v, nil
	}

	var out []string
	printlnFn = func(args ...any) (int, error) {
		var sb strings.Builder
		for i, a := range args {
			if i > 0 {
				sb.WriteString(" ")
			}
			if s, ok := a.(string); ok {
				sb.WriteString(s)
			}
		}
		out = append(out, sb.String())
		return 0, nil
	}
	return &out
}

func TestRegisterLoginAndEntryRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	out := stubIO(t,
		[]string{"alice1"},
		[]string{"secret1", "secret1"},
		nil)
	require.NoError(t, a.Register(ctx))
	require.Contains(t, strings.Join(*out, "\n"), "Account created")

	out = stubIO(t,
		[]string{"alice1"},
		[]string{"secret1"},
		nil)
	require.NoError(t, a.Login(ctx))
	require.True(t, a.isLoggedIn())
	require.Len(t, []byte(a.session.Key), keyring.KeySize)

	out = stubIO(t,
		[]string{"My Day", "work, life", "journal"},
		nil,
		[]string{"Today I wrote some Go."})
	require.NoError(t, a.NewEntry(ctx))

	index, err := a.repo.List(ctx, "alice1")
	require.NoError(t, err)
	require.Len(t, index, 1)
	require.Equal(t, "My Day", index[0].Title)

	out = stubIO(t, []string{index[0].Filename}, nil, nil)
	require.NoError(t, a.Show(ctx))
	require.Contains(t, strings.Join(*out, "\n"), "Today I wrote some Go.")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	a := newTestApp(t)

	out := stubIO(t,
		[]string{"bob123"},
		[]string{"secret1", "different"},
		nil)
	require.Error(t, a.Register(context.Background()))
	require.Contains(t, strings.Join(*out, "\n"), "Passwords do not match")
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	stubIO(t, []string{"carol1"}, []string{"secret1", "secret1"}, nil)
	require.NoError(t, a.Register(ctx))

	stubIO(t, []string{"carol1"}, []string{"wrongpw"}, nil)
	require.Error(t, a.Login(ctx))
	require.False(t, a.isLoggedIn())
}

func TestChangePassword_RekeysEntries(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	stubIO(t, []string{"dave12"}, []string{"secret1", "secret1"}, nil)
	require.NoError(t, a.Register(ctx))

	stubIO(t, []string{"dave12"}, []string{"secret1"}, nil)
	require.NoError(t, a.Login(ctx))

	stubIO(t, []string{"Keep me", "", "journal"}, nil, []string{"Precious words."})
	require.NoError(t, a.NewEntry(ctx))

	stubIO(t, nil, []string{"secret1", "newpass1", "newpass1"}, nil)
	require.NoError(t, a.ChangePassword(ctx))

	// The session key was refreshed, so the entry decrypts under the
	// rekeyed credentials without logging in again.
	index, err := a.repo.List(ctx, "dave12")
	require.NoError(t, err)
	require.Len(t, index, 1)

	content, err := a.repo.Load(ctx, "dave12", index[0].Filename, a.session.Key)
	require.NoError(t, err)
	require.Equal(t, "Precious words.", string(content))

	// A fresh login with the new password derives the same working key.
	stubIO(t, []string{"dave12"}, []string{"newpass1"}, nil)
	require.NoError(t, a.Login(ctx))
	content, err = a.repo.Load(ctx, "dave12", index[0].Filename, a.session.Key)
	require.NoError(t, err)
	require.Equal(t, "Precious words.", string(content))
}

func TestEdit_ReplacesContentKeepingTitleAndPin(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	stubIO(t, []string{"erin12"}, []string{"secret1", "secret1"}, nil)
	require.NoError(t, a.Register(ctx))
	stubIO(t, []string{"erin12"}, []string{"secret1"}, nil)
	require.NoError(t, a.Login(ctx))

	stubIO(t, []string{"Walk", "walk", "journal"}, nil, []string{"Old words."})
	require.NoError(t, a.NewEntry(ctx))

	index, err := a.repo.List(ctx, "erin12")
	require.NoError(t, err)
	require.Len(t, index, 1)
	filename := index[0].Filename

	_, err = a.repo.TogglePin(ctx, "erin12", filename)
	require.NoError(t, err)

	// Empty answers keep title, tags and category.
	stubIO(t, []string{filename, "", "", ""}, nil, []string{"New words here."})
	require.NoError(t, a.Edit(ctx))

	content, err := a.repo.Load(ctx, "erin12", filename, a.session.Key)
	require.NoError(t, err)
	require.Equal(t, "New words here.", string(content))

	index, err = a.repo.List(ctx, "erin12")
	require.NoError(t, err)
	require.Len(t, index, 1, "edit must not create a second entry")
	require.Equal(t, "Walk", index[0].Title)
	require.True(t, index[0].Pinned, "edit must not drop the pin")
	require.Equal(t, []string{"walk"}, index[0].Tags)
}

func TestShow_TamperedHeaderReportsIntegrityFailure(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	stubIO(t, []string{"fred12"}, []string{"secret1", "secret1"}, nil)
	require.NoError(t, a.Register(ctx))
	stubIO(t, []string{"fred12"}, []string{"secret1"}, nil)
	require.NoError(t, a.Login(ctx))

	stubIO(t, []string{"Note", "", "journal"}, nil, []string{"hands off"})
	require.NoError(t, a.NewEntry(ctx))

	index, err := a.repo.List(ctx, "fred12")
	require.NoError(t, err)
	require.Len(t, index, 1)

	// Corrupt the format byte in the ciphertext header.
	raw, err := os.ReadFile(index[0].Path)
	require.NoError(t, err)
	raw[0] ^= 0xFF
	require.NoError(t, os.WriteFile(index[0].Path, raw, 0o600))

	out := stubIO(t, []string{index[0].Filename}, nil, nil)
	require.Error(t, a.Show(ctx))
	require.Contains(t, strings.Join(*out, "\n"), "integrity check failed")
}

func TestCommandsRequireLogin(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	stubIO(t, nil, nil, nil)

	require.Error(t, a.List(ctx))
	require.Error(t, a.NewEntry(ctx))
	require.Error(t, a.Edit(ctx))
	require.Error(t, a.Search(ctx))
	require.Error(t, a.Stats(ctx))
	require.Error(t, a.ChangePassword(ctx))
}
