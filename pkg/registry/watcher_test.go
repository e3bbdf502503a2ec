package registry

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/goliatone/go-modelinput/pkg/column"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fsnotify keeps background goroutines on windows")
	}
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  User: users\n"), 0o644))

	reg := New()
	w, err := NewWatcher(reg, path, zerolog.Nop())
	require.NoError(t, err)

	reloaded := make(chan File, 4)
	w.OnReload(func(f File, err error) {
		if err != nil {
			return
		}
		select {
		case reloaded <- f:
		default:
		}
	})

	require.NoError(t, w.Start())
	defer w.Stop()

	table, err := reg.TableName(context.Background(), "User")
	require.NoError(t, err)
	require.Equal(t, "users", table)

	require.NoError(t, os.WriteFile(path, []byte("models:\n  User: members\n"), 0o644))

	require.Eventually(t, func() bool {
		table, err := reg.TableName(context.Background(), "User")
		return err == nil && table == "members"
	}, 5*time.Second, 20*time.Millisecond)

	select {
	case f := <-reloaded:
		require.NotEmpty(t, f.Models)
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback not invoked")
	}

	w.Stop()
}

func TestWatcherKeepsTablesOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  User: users\n"), 0o644))

	reg := New()
	w, err := NewWatcher(reg, path, zerolog.Nop())
	require.NoError(t, err)

	var failures int
	w.OnReload(func(_ File, err error) {
		if err != nil {
			failures++
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("models: ["), 0o644))
	require.Error(t, w.Reload())
	require.Equal(t, 1, failures)

	table, err := reg.TableName(context.Background(), "User")
	require.NoError(t, err)
	require.Equal(t, "users", table)
}

func TestWatcherKeepsConfiguredInflection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  User: users\n"), 0o644))

	reg := New(WithInflection(true))
	table, err := reg.TableName(context.Background(), "BlogPost")
	require.NoError(t, err)
	require.Equal(t, "blog_posts", table)

	w, err := NewWatcher(reg, path, zerolog.Nop(), WithInflectionDefault(true))
	require.NoError(t, err)

	table, err = reg.TableName(context.Background(), "BlogPost")
	require.NoError(t, err)
	require.Equal(t, "blog_posts", table)

	require.NoError(t, os.WriteFile(path, []byte("inflect: false\nmodels:\n  User: members\n"), 0o644))
	require.NoError(t, w.Reload())

	table, err = reg.TableName(context.Background(), "BlogPost")
	require.NoError(t, err)
	require.Equal(t, "blog_posts", table)
	table, err = reg.TableName(context.Background(), "User")
	require.NoError(t, err)
	require.Equal(t, "members", table)

	plain := New(WithInflection(true))
	_, err = NewWatcher(plain, path, zerolog.Nop())
	require.NoError(t, err)
	_, err = plain.TableName(context.Background(), "BlogPost")
	require.ErrorIs(t, err, column.ErrModelNotFound)
}

func TestNewWatcherFailsOnMissingFile(t *testing.T) {
	_, err := NewWatcher(New(), filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop())
	require.Error(t, err)

	_, err = NewWatcher(nil, "models.yaml", zerolog.Nop())
	require.Error(t, err)
}
