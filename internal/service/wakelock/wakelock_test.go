package wakelock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCommand checks the per-OS inhibitor invocation.
func TestCommand(t *testing.T) {
	t.Parallel()

	name, args, err := command("linux", 42)
	require.NoError(t, err)
	require.Equal(t, "systemd-inhibit", name)
	require.Contains(t, args, "--what=idle")
	require.Equal(t, []string{"sleep", "infinity"}, args[len(args)-2:])

	name, args, err = command("darwin", 42)
	require.NoError(t, err)
	require.Equal(t, "caffeinate", name)
	require.Equal(t, []string{"-d", "-w", "42"}, args)

	_, _, err = command("windows", 42)
	require.ErrorIs(t, err, ErrUnsupportedOS)
}

// TestRelease_Nil tolerates releasing a lock that was never acquired.
func TestRelease_Nil(t *testing.T) {
	t.Parallel()

	var l *Lock
	require.NotPanics(t, l.Release)
}
