package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexEnsureIsInsertOrGet(t *testing.T) {
	x := NewIndex()
	id := NewID("ecs", "Host")

	first := x.Ensure(NewStructure(id))
	withMember := first.(*Structure).WithMember(Member{Name: "name", Target: String})
	x.Put(withMember)

	got := x.Ensure(NewStructure(id))
	require.IsType(t, &Structure{}, got)
	assert.Len(t, got.(*Structure).Members, 1)
	assert.Equal(t, 1, x.Len())
}

func TestIndexStructureLookup(t *testing.T) {
	x := NewIndex()
	x.Put(NewStructure(NewID("ecs", "Host")))
	x.Put(NewList(NewID("ecs", "HostIpList"), String))

	s, err := x.Structure(NewID("ecs", "Host"))
	require.NoError(t, err)
	assert.Equal(t, "Host", s.ID().Name)

	_, err = x.Structure(NewID("ecs", "HostIpList"))
	require.ErrorIs(t, err, ErrNotAStructure)

	_, err = x.Structure(NewID("ecs", "Missing"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIndexRegister(t *testing.T) {
	x := NewIndex()
	id := NewID("ecs", "HostGeo")

	require.NoError(t, x.Register(NewStructure(id)))
	require.NoError(t, x.Register(NewStructure(id)), "equal shapes register idempotently")

	err := x.Register(NewMap(id, String))
	require.ErrorIs(t, err, ErrDuplicateIdentifier)
	assert.Contains(t, err.Error(), "ecs#HostGeo")
}

func TestIndexGetResolvesPrelude(t *testing.T) {
	x := NewIndex()

	s, ok := x.Get(Long)
	require.True(t, ok)
	assert.Equal(t, KindScalar, s.Kind())
	assert.Equal(t, 0, x.Len())
}

func TestIndexValidateReportsDanglingTargets(t *testing.T) {
	x := NewIndex()
	root := NewStructure(NewID("ecs", "Record")).
		WithMember(Member{Name: "host", Target: NewID("ecs", "Host")}).
		WithMember(Member{Name: "message", Target: String})
	x.Put(root)

	err := x.Validate()
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "ecs#Host")

	x.Put(NewStructure(NewID("ecs", "Host")))
	assert.NoError(t, x.Validate())
}

func TestStructureWithMemberCopiesOnWrite(t *testing.T) {
	orig := NewStructure(NewID("ecs", "Host"))
	next := orig.WithMember(Member{Name: "name", Target: String})

	assert.Empty(t, orig.Members)
	require.Len(t, next.Members, 1)
	assert.Equal(t, NewID("ecs", "Host"), next.Members["name"].Container)
	assert.Equal(t, []string{"name"}, next.MemberNames())
}

func TestParseID(t *testing.T) {
	id, err := ParseID("ecs#Host")
	require.NoError(t, err)
	assert.Equal(t, NewID("ecs", "Host"), id)
	assert.Equal(t, "ecs#Host$name", id.Member("name").String())

	_, err = ParseID("Host")
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Structure", KindStructure.String())
	assert.Equal(t, "Scalar", KindScalar.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}
