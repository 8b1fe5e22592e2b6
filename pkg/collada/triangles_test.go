package collada

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uvSets = `
  <source id="uv0" name="uv0">
    <float_array id="uv0-array">0 0 1 0 0 1</float_array>
    <technique_common>
      <accessor source="#uv0-array" count="3" stride="2">
        <param name="S" type="float"/><param name="T" type="float"/>
      </accessor>
    </technique_common>
  </source>
  <source id="uv1" name="uv1">
    <float_array id="uv1-array">0.5 0.5</float_array>
    <technique_common>
      <accessor source="#uv1-array" count="1" stride="2">
        <param name="S" type="float"/><param name="T" type="float"/>
      </accessor>
    </technique_common>
  </source>
  <source id="col" name="paint">
    <float_array id="col-array">1 0 0 0 1 0 0 0 1</float_array>
    <technique_common>
      <accessor source="#col-array" count="3" stride="3">
        <param name="R" type="float"/><param name="G" type="float"/><param name="B" type="float"/>
      </accessor>
    </technique_common>
  </source>
  <vertices id="verts"><input semantic="POSITION" source="#pos"/></vertices>`

func assemble(t *testing.T, prim string) (*loader, *ModelNode) {
	t.Helper()
	l, _ := newTestLoader(t, geometryDoc(xyzSource("pos", "0 0 0 1 0 0 0 1 0", 3)+uvSets+prim))
	mesh := l.libs.geometries["g"].First("mesh")
	node := newModelNode("g", "")
	l.assembleTriangles(mesh.Children[len(mesh.Children)-1], node)
	return l, node
}

func TestTexCoordSetFilter(t *testing.T) {
	_, node := assemble(t, `<triangles count="1">
	  <input semantic="VERTEX" source="#verts" offset="0"/>
	  <input semantic="TEXCOORD" source="#uv0" offset="1" set="0"/>
	  <input semantic="TEXCOORD" source="#uv1" offset="2" set="1"/>
	  <p>0 0 0 1 1 0 2 2 0</p>
	</triangles>`)

	require.Len(t, node.Triangles, 1)
	assert.Len(t, node.TexCoords, 3, "second UV set is not extracted")
	for c := 0; c < 3; c++ {
		uv, ok := node.Triangles[0].UV[c].Get()
		assert.True(t, ok)
		assert.Equal(t, c, uv)
	}
}

func TestColorOffsetRequiresSetZero(t *testing.T) {
	t.Run("without set", func(t *testing.T) {
		_, node := assemble(t, `<triangles count="1">
		  <input semantic="VERTEX" source="#verts" offset="0"/>
		  <input semantic="COLOR" source="#col" offset="1"/>
		  <p>0 0 1 1 2 2</p>
		</triangles>`)

		require.Len(t, node.Triangles, 1)
		assert.Len(t, node.VertexColors("paint"), 3, "colors are extracted regardless of set")
		assert.Empty(t, node.ColorGroup)
		for c := 0; c < 3; c++ {
			assert.False(t, node.Triangles[0].Color[c].IsSet())
		}
	})

	t.Run("set 0", func(t *testing.T) {
		_, node := assemble(t, `<triangles count="1">
		  <input semantic="VERTEX" source="#verts" offset="0"/>
		  <input semantic="COLOR" source="#col" offset="1" set="0"/>
		  <p>0 2 1 1 2 0</p>
		</triangles>`)

		assert.Equal(t, "paint", node.ColorGroup)
		got := make([]int, 3)
		for c := 0; c < 3; c++ {
			got[c], _ = node.Triangles[0].Color[c].Get()
		}
		assert.Equal(t, []int{2, 1, 0}, got)
	})
}

func TestOffsetBeyondStride(t *testing.T) {
	l, node := assemble(t, `<triangles count="1">
	  <input semantic="VERTEX" source="#verts" offset="0"/>
	  <input semantic="TEXCOORD" source="#uv0" offset="5"/>
	  <p>0 1 2</p>
	</triangles>`)

	require.Len(t, node.Triangles, 1)
	assert.False(t, node.Triangles[0].UV[0].IsSet())
	require.Len(t, l.diag.list, 1)
	assert.Equal(t, "input", l.diag.list[0].Element)
}

func TestMissingIndexList(t *testing.T) {
	l, node := assemble(t, `<triangles count="1">
	  <input semantic="VERTEX" source="#verts" offset="0"/>
	</triangles>`)

	assert.Empty(t, node.Triangles)
	assert.Empty(t, node.Vertices, "inputs are not read without an index list")
	require.Len(t, l.diag.list, 1)
	assert.Equal(t, "p", l.diag.list[0].Element)
}

func TestInvalidCount(t *testing.T) {
	for _, count := range []string{"-1", "three", "99999999999999999999"} {
		t.Run(count, func(t *testing.T) {
			l, node := assemble(t, `<triangles count="`+count+`">
			  <input semantic="VERTEX" source="#verts" offset="0"/>
			  <p>0 1 2</p>
			</triangles>`)

			assert.Empty(t, node.Triangles)
			require.Len(t, l.diag.list, 1)
			assert.Equal(t, "count", l.diag.list[0].Element)
		})
	}
}

func TestStreamsNotShared(t *testing.T) {
	l, _ := newTestLoader(t, geometryDoc(xyzSource("pos", "0 0 0 1 0 0 0 1 0", 3)+uvSets+`
	  <triangles count="1"><input semantic="VERTEX" source="#verts" offset="0"/><p>0 1 2</p></triangles>
	  <triangles count="1"><input semantic="VERTEX" source="#verts" offset="0"/><p>2 1 0</p></triangles>`))

	l.parseGeometry(l.libs.geometries["g"], "g", symbolTable{})
	require.Len(t, l.model.Nodes, 2)
	for _, n := range l.model.Nodes {
		assert.Len(t, n.Vertices, 3, "each primitive gets its own copy of the source")
	}
}
