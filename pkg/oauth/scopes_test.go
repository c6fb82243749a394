package oauth_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hubmail/pkg/oauth"
)

func TestValidScopeName(t *testing.T) {
	t.Parallel()

	valid := []string{"oauth", "crm.objects.contacts.read", "marketing-email", "sales_email", "e"}
	for _, s := range valid {
		require.True(t, oauth.ValidScopeName(s), s)
	}

	invalid := []string{"", "Oauth", "crm objects", "-lead", "trailing.", "crm/lists", "a\nb"}
	for _, s := range invalid {
		require.False(t, oauth.ValidScopeName(s), s)
	}
}

func TestScopeSet(t *testing.T) {
	t.Parallel()

	s, err := oauth.NewScopeSet("crm.lists.read", "oauth", " ", "crm.lists.read", "automation")
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	require.True(t, s.Has("oauth"))
	require.False(t, s.Has("crm.lists.write"))
	require.Equal(t, []string{"automation", "crm.lists.read", "oauth"}, s.Slice())
	require.Equal(t, "automation crm.lists.read oauth", s.String())

	require.NoError(t, s.Add("content"))
	require.Equal(t, 4, s.Len())

	var zero oauth.ScopeSet
	require.Zero(t, zero.Len())
	require.Empty(t, zero.String())
	require.NoError(t, zero.Add("oauth"))
	require.True(t, zero.Has("oauth"))
}

func TestScopeSet_OrderInsensitive(t *testing.T) {
	t.Parallel()

	a := oauth.MustScopeSet("oauth", "crm.lists.read", "crm.lists.write")
	b := oauth.MustScopeSet("crm.lists.write", "oauth", "crm.lists.read")
	require.Equal(t, a.String(), b.String())
}

func TestNewScopeSet_Invalid(t *testing.T) {
	t.Parallel()

	_, err := oauth.NewScopeSet("oauth", "Bad Scope")
	require.ErrorIs(t, err, oauth.ErrInvalidScope)

	require.Panics(t, func() { oauth.MustScopeSet("no spaces allowed") })
}

func TestLoadScopes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "scopes.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`scopes:
  - oauth
  - crm.objects.contacts.read
optional_scopes:
  - marketing-email
`), 0o600))

		req, opt, err := oauth.LoadScopes(path)
		require.NoError(t, err)
		require.Equal(t, "crm.objects.contacts.read oauth", req.String())
		require.Equal(t, "marketing-email", opt.String())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := oauth.LoadScopes(filepath.Join(dir, "nope.yaml"))
		require.ErrorIs(t, err, oauth.ErrScopesFile)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scopes: [oauth\n"), 0o600))

		_, _, err := oauth.LoadScopes(path)
		require.ErrorIs(t, err, oauth.ErrScopesFile)
	})

	t.Run("invalid scope", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scopes:\n  - \"CRM Lists\"\n"), 0o600))

		_, _, err := oauth.LoadScopes(path)
		require.ErrorIs(t, err, oauth.ErrInvalidScope)
	})
}

func TestResolveScopes(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		req, opt, err := oauth.ResolveScopes(oauth.Config{})
		require.NoError(t, err)
		require.Equal(t, len(oauth.DefaultScopes()), req.Len())
		require.Equal(t, "marketing-email transactional-email", opt.String())
	})

	t.Run("explicit scopes drop default optional scopes", func(t *testing.T) {
		t.Parallel()

		req, opt, err := oauth.ResolveScopes(oauth.Config{Scopes: []string{"oauth"}})
		require.NoError(t, err)
		require.Equal(t, "oauth", req.String())
		require.Zero(t, opt.Len())
	})

	t.Run("explicit scopes win over file", func(t *testing.T) {
		t.Parallel()

		req, _, err := oauth.ResolveScopes(oauth.Config{
			Scopes:     []string{"content"},
			ScopesFile: "/does/not/exist.yaml",
		})
		require.NoError(t, err)
		require.Equal(t, "content", req.String())
	})

	t.Run("file used when no lists configured", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "scopes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scopes: [automation]\n"), 0o600))

		req, opt, err := oauth.ResolveScopes(oauth.Config{ScopesFile: path})
		require.NoError(t, err)
		require.Equal(t, "automation", req.String())
		require.Zero(t, opt.Len())
	})
}
