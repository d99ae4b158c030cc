package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/shard"
)

func TestDegreeAndNeighbors(t *testing.T) {
	g, ctx := newTestGraph(t, 4)

	center, err := g.AddEmptyNode(ctx, "Node", "center")
	require.NoError(t, err)
	p1, err := g.AddEmptyNode(ctx, "Node", "p1")
	require.NoError(t, err)
	p2, err := g.AddEmptyNode(ctx, "Node", "p2")
	require.NoError(t, err)

	_, err = g.AddEmptyRelationship(ctx, "KNOWS", ByID(center), ByID(p1))
	require.NoError(t, err)
	_, err = g.AddEmptyRelationship(ctx, "KNOWS", ByID(center), ByID(p2))
	require.NoError(t, err)

	deg, err := g.Degree(ctx, ByID(center), shard.DirOut, nil)
	require.NoError(t, err)
	require.Equal(t, 2, deg)

	neighbors, err := g.Neighbors(ctx, ByID(center), shard.DirOut, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{p1, p2}, neighbors)

	relIDs, err := g.RelationshipIDs(ctx, ByID(center), shard.DirOut, nil)
	require.NoError(t, err)
	require.Len(t, relIDs, 2)
}

func TestRelationshipsFetchesRemoteRecordsForIncomingEdges(t *testing.T) {
	g, ctx := newTestGraph(t, 4)

	var u, v uint64
	var err error
	for i := 0; ; i++ {
		uCandidate, addErr := g.AddEmptyNode(ctx, "Node", keyFor(i, "ru"))
		require.NoError(t, addErr)
		vCandidate, addErr := g.AddEmptyNode(ctx, "Node", keyFor(i, "rv"))
		require.NoError(t, addErr)
		if ident.ShardOf(uCandidate) != ident.ShardOf(vCandidate) {
			u, v = uCandidate, vCandidate
			break
		}
		require.Less(t, i, 1000, "could not find endpoints on different shards")
	}

	relID, err := g.AddEmptyRelationship(ctx, "KNOWS", ByID(u), ByID(v))
	require.NoError(t, err)

	recs, err := g.Relationships(ctx, ByID(v), shard.DirIn, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, relID, recs[0].ID)
	require.Equal(t, u, recs[0].Start)
	require.Equal(t, v, recs[0].End)
}

func TestDegreeOnUnresolvedSelectorIsZero(t *testing.T) {
	g, ctx := newTestGraph(t, 4)

	deg, err := g.Degree(ctx, ByKey("Node", "missing"), shard.DirOut, nil)
	require.NoError(t, err)
	require.Equal(t, 0, deg)
}
