package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/resumefile"
	"github.com/jonathan/resume-builder/internal/seed"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatTest(t *testing.T) (*cobra.Command, *application, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)

	sess := session.New(seed.Example())
	t.Cleanup(sess.Close)
	return cmd, &application{cfg: &config.Config{}, session: sess}, &out
}

func TestHandleChatLine_Commands(t *testing.T) {
	cmd, a, out := newChatTest(t)
	printer := observability.NewPrinter(out)

	quit, err := handleChatLine(cmd, a, printer, "/preview")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "PREVIEW (MODERN)")

	path := filepath.Join(t.TempDir(), "cv.yaml")
	quit, err = handleChatLine(cmd, a, printer, "/save "+path)
	require.NoError(t, err)
	assert.False(t, quit)
	saved, err := resumefile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, a.session.Document(), saved)

	quit, err = handleChatLine(cmd, a, printer, "/quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestHandleChatLine_MessageWithoutModel(t *testing.T) {
	cmd, a, out := newChatTest(t)

	quit, err := handleChatLine(cmd, a, observability.NewPrinter(out), "add Go to my skills")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Len(t, a.session.History(), 3)
}

func TestHandleChatLine_ClosedSessionEndsChat(t *testing.T) {
	cmd, a, out := newChatTest(t)
	a.session.Close()

	quit, err := handleChatLine(cmd, a, observability.NewPrinter(out), "hello")
	require.NoError(t, err)
	assert.True(t, quit)
}
