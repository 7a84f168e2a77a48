package pgrows

import (
	"testing"
	"time"

	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQFromAnyScalars(t *testing.T) {
	q, err := qFromAny(nil)
	require.NoError(t, err)
	assert.True(t, q.IsNull())

	q, err = qFromAny(true)
	require.NoError(t, err)
	b, err := q.ToBool()
	require.NoError(t, err)
	assert.True(t, b)

	q, err = qFromAny(int32(42))
	require.NoError(t, err)
	n, err := q.ToNum()
	require.NoError(t, err)
	assert.Equal(t, 42.0, n)

	q, err = qFromAny(3.5)
	require.NoError(t, err)
	n, err = q.ToNum()
	require.NoError(t, err)
	assert.Equal(t, 3.5, n)
}

func TestQFromAnyPlainString(t *testing.T) {
	q, err := qFromAny("hello")
	require.NoError(t, err)
	s, err := q.ToStr()
	require.NoError(t, err)
	assert.Equal(t, "hello", s.String())
}

func TestQFromAnyWKTString(t *testing.T) {
	q, err := qFromAny("POINT (1 2)")
	require.NoError(t, err)
	g, err := q.ToGeom()
	require.NoError(t, err)
	assert.Equal(t, geom.Point, g.Kind)
}

func TestQFromAnyTimestamp(t *testing.T) {
	ts := time.Date(2020, 6, 15, 12, 30, 0, 0, time.UTC)
	q, err := qFromAny(ts)
	require.NoError(t, err)
	assert.True(t, q.IsInstant())

	b, err := q.ToBound()
	require.NoError(t, err)
	assert.Equal(t, value.BoundTimestamp, b.Kind)
}

func TestQFromAnyDateOnlyTimestampFoldsToDateBound(t *testing.T) {
	ts := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)
	q, err := qFromAny(ts)
	require.NoError(t, err)

	b, err := q.ToBound()
	require.NoError(t, err)
	assert.Equal(t, value.BoundDate, b.Kind)
}

func TestQFromAnyUnsupportedType(t *testing.T) {
	_, err := qFromAny(struct{}{})
	require.Error(t, err)
}
