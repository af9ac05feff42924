package codemod

import (
	"testing"

	"accessor-rename/internal/renametable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T, pairs ...string) *renametable.Table {
	t.Helper()
	require.Zero(t, len(pairs)%2, "pairs must be singular/plural")
	entries := make([]renametable.Entry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		entries = append(entries, renametable.Entry{Singular: pairs[i], Plural: pairs[i+1]})
	}
	table, err := renametable.New(entries)
	require.NoError(t, err)
	return table
}

func TestRewriter_ExampleScenario(t *testing.T) {
	rw, err := NewRewriter(testTable(t, "user", "users", "teamMember", "team_members"), DefaultAccessRoots)
	require.NoError(t, err)

	out, res := rw.RewriteString(`const u = await prisma.user.findMany(); await tx.teamMember.create(...)`)
	assert.Equal(t, `const u = await prisma.users.findMany(); await tx.team_members.create(...)`, out)
	assert.Equal(t, 2, res.Replacements)
	assert.Equal(t, map[string]int{"user": 1, "teamMember": 1}, res.ByEntry)
}

func TestRewriter_WordBoundaries(t *testing.T) {
	rw, err := NewRewriter(testTable(t, "user", "users", "booking", "bookings"), DefaultAccessRoots)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{"already plural", "await prisma.users.findMany()"},
		{"wrong root", "const x = somePrismaUser.user"},
		{"root suffix", "myprisma.user.findFirst()"},
		{"root prefix", "prismaClient.user.findFirst()"},
		{"longer member", "prisma.userName"},
		{"member with digit", "tx.booking2"},
		{"no member access", "const user = prisma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, res := rw.RewriteString(tt.input)
			assert.Equal(t, tt.input, out)
			assert.Zero(t, res.Replacements)
		})
	}
}

func TestRewriter_BothRoots(t *testing.T) {
	rw, err := NewRewriter(testTable(t, "booking", "bookings"), DefaultAccessRoots)
	require.NoError(t, err)

	out, res := rw.RewriteString("prisma.booking.count(); tx.booking.update({})")
	assert.Equal(t, "prisma.bookings.count(); tx.bookings.update({})", out)
	assert.Equal(t, 2, res.Replacements)
}

func TestRewriter_PrefixKeysDoNotInterfere(t *testing.T) {
	rw, err := NewRewriter(testTable(t,
		"user", "users",
		"userProfile", "user_profiles",
		"bulkOperation", "bulk_operations",
		"bulkOperationResult", "bulk_operation_results",
	), DefaultAccessRoots)
	require.NoError(t, err)

	out, res := rw.RewriteString("prisma.user.x; prisma.userProfile.y; tx.bulkOperationResult.z; tx.bulkOperation.w")
	assert.Equal(t, "prisma.users.x; prisma.user_profiles.y; tx.bulk_operation_results.z; tx.bulk_operations.w", out)
	assert.Equal(t, 4, res.Replacements)
}

func TestRewriter_Counts(t *testing.T) {
	rw, err := NewRewriter(testTable(t, "user", "users", "post", "posts", "invoice", "invoices"), DefaultAccessRoots)
	require.NoError(t, err)

	src := "prisma.user.a()\ntx.user.b()\nprisma.post.c()\n"
	out, res := rw.RewriteString(src)
	assert.Equal(t, "prisma.users.a()\ntx.users.b()\nprisma.posts.c()\n", out)
	assert.Equal(t, 3, res.Replacements)
	assert.Equal(t, map[string]int{"user": 2, "post": 1}, res.ByEntry)
}

func TestRewriter_Idempotent(t *testing.T) {
	rw, err := NewRewriter(renametable.Builtin(), DefaultAccessRoots)
	require.NoError(t, err)

	once, first := rw.RewriteString("prisma.teamMember.findMany(); tx.workflowHistory.create(); prisma.verificationToken.delete()")
	assert.Equal(t, 3, first.Replacements)

	twice, second := rw.RewriteString(once)
	assert.Equal(t, once, twice)
	assert.Zero(t, second.Replacements)
}

func TestRewriter_CustomRoots(t *testing.T) {
	rw, err := NewRewriter(testTable(t, "user", "users"), []string{"db", "db", " trx "})
	require.NoError(t, err)
	assert.Equal(t, `\b(db|trx)\.(user)\b`, rw.pattern.String())

	out, _ := rw.RewriteString("db.user; trx.user; prisma.user")
	assert.Equal(t, "db.users; trx.users; prisma.user", out)
}

func TestRewriter_NoMatchReturnsInput(t *testing.T) {
	rw, err := NewRewriter(testTable(t, "user", "users"), DefaultAccessRoots)
	require.NoError(t, err)

	src := []byte("export const nothing = 1\n")
	out, res := rw.Rewrite(src)
	assert.Equal(t, src, out)
	assert.Nil(t, res.ByEntry)
}

func TestNewRewriter_Errors(t *testing.T) {
	table := testTable(t, "user", "users")

	_, err := NewRewriter(nil, DefaultAccessRoots)
	assert.ErrorContains(t, err, "rename table is empty")

	_, err = NewRewriter(table, nil)
	assert.ErrorContains(t, err, "access root")

	_, err = NewRewriter(table, []string{"prisma", "this.prisma"})
	assert.ErrorContains(t, err, `"this.prisma" is not a valid identifier`)
}
