package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(CacheLookups.WithLabelValues("miss"))

	RecordCacheLookup(true)
	RecordCacheLookup(true)
	RecordCacheLookup(false)

	assert.Equal(t, hits+2, testutil.ToFloat64(CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(CacheLookups.WithLabelValues("miss")))
}

func TestCacheGroups(t *testing.T) {
	groups := testutil.ToFloat64(CacheGroups)
	evicted := testutil.ToFloat64(CacheEvictions.WithLabelValues("explicit"))

	RecordCacheGroupAdded()
	RecordCacheGroupAdded()
	RecordCacheEviction("explicit")

	assert.Equal(t, groups+1, testutil.ToFloat64(CacheGroups))
	assert.Equal(t, evicted+1, testutil.ToFloat64(CacheEvictions.WithLabelValues("explicit")))
}

func TestRecordBindingCompiled(t *testing.T) {
	before := testutil.ToFloat64(BindingsCompiled.WithLabelValues("list<string>"))

	RecordBindingCompiled("list<string>")

	assert.Equal(t, before+1, testutil.ToFloat64(BindingsCompiled.WithLabelValues("list<string>")))
}

func TestRecordToggleEvaluation(t *testing.T) {
	counter := ToggleEvaluations.WithLabelValues("argbind.UserService.tag", "false")
	before := testutil.ToFloat64(counter)

	RecordToggleEvaluation("argbind.UserService.tag", false)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
