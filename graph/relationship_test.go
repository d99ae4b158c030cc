package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/internal/propbag"
	"github.com/dreamware/shardgraph/shard"
)

func TestAddRelationshipSameShardFastPath(t *testing.T) {
	g, ctx := newTestGraph(t, 1)

	u, err := g.AddEmptyNode(ctx, "Node", "u")
	require.NoError(t, err)
	v, err := g.AddEmptyNode(ctx, "Node", "v")
	require.NoError(t, err)

	relID, err := g.AddRelationship(ctx, "KNOWS", ByID(u), ByID(v), propbag.New())
	require.NoError(t, err)
	require.NotEqual(t, ident.Invalid, relID)

	rec, ok, err := g.GetRelationship(ctx, relID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, u, rec.Start)
	require.Equal(t, v, rec.End)
}

func TestAddRelationshipInvalidEndpointReturnsInvalid(t *testing.T) {
	g, ctx := newTestGraph(t, 4)

	u, err := g.AddEmptyNode(ctx, "Node", "u")
	require.NoError(t, err)

	relID, err := g.AddEmptyRelationship(ctx, "KNOWS", ByID(u), ByID(999999))
	require.NoError(t, err)
	require.Equal(t, ident.Invalid, relID)
}

func TestRemoveRelationshipSameShard(t *testing.T) {
	g, ctx := newTestGraph(t, 1)

	u, err := g.AddEmptyNode(ctx, "Node", "u")
	require.NoError(t, err)
	v, err := g.AddEmptyNode(ctx, "Node", "v")
	require.NoError(t, err)
	relID, err := g.AddEmptyRelationship(ctx, "KNOWS", ByID(u), ByID(v))
	require.NoError(t, err)

	ok, err := g.RemoveRelationship(ctx, relID)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = g.GetRelationship(ctx, relID)
	require.NoError(t, err)
	require.False(t, ok)

	d, err := g.Degree(ctx, ByID(u), shard.DirOut, nil)
	require.NoError(t, err)
	require.Equal(t, 0, d)
	d, err = g.Degree(ctx, ByID(v), shard.DirIn, nil)
	require.NoError(t, err)
	require.Equal(t, 0, d)
}

func TestRemoveRelationshipCrossShard(t *testing.T) {
	g, ctx := newTestGraph(t, 4)

	var u, v uint64
	var err error
	for i := 0; ; i++ {
		uCandidate, addErr := g.AddEmptyNode(ctx, "Node", keyFor(i, "cu"))
		require.NoError(t, addErr)
		vCandidate, addErr := g.AddEmptyNode(ctx, "Node", keyFor(i, "cv"))
		require.NoError(t, addErr)
		if ident.ShardOf(uCandidate) != ident.ShardOf(vCandidate) {
			u, v = uCandidate, vCandidate
			break
		}
		require.Less(t, i, 1000, "could not find endpoints on different shards")
	}

	relID, err := g.AddEmptyRelationship(ctx, "KNOWS", ByID(u), ByID(v))
	require.NoError(t, err)
	require.Equal(t, ident.ShardOf(u), ident.ShardOf(relID))

	ok, err := g.RemoveRelationship(ctx, relID)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = g.GetRelationship(ctx, relID)
	require.NoError(t, err)
	require.False(t, ok)

	neighbors, err := g.Neighbors(ctx, ByID(v), shard.DirIn, nil)
	require.NoError(t, err)
	require.Empty(t, neighbors)
}

func TestRemoveRelationshipInvalidIDIsNoOp(t *testing.T) {
	g, ctx := newTestGraph(t, 4)

	ok, err := g.RemoveRelationship(ctx, 123456789)
	require.NoError(t, err)
	require.False(t, ok)
}
