// Package paramspace describes the configuration space searched by the tuner.
//
// A Descriptor is one tunable dimension (boolean, integer range, continuous
// range or enumerated values). A Space groups the descriptors of one job, and a
// MultiJobSpace composes several job spaces into a joint space. Points are
// immutable value assignments that always render sorted by parameter name.
//
// Main Types:
//   - Descriptor: domain of one parameter with random, neighborhood and grid sampling
//   - Space / Point: per-job parameter space and its points
//   - MultiJobSpace / MultiJobPoint: joint space over several jobs
//   - Cardinality: finite point count, or Unbounded
//
// Sampling draws from the process-wide source in pkg/utils unless a space is
// given its own source with WithRandSource. Reseeding the process-wide source
// affects every space that has not been given its own.
//
// Usage:
//
//	buf, _ := paramspace.NewInteger("io.sort.mb", paramspace.EffectMap, 50, 400)
//	comp, _ := paramspace.NewBoolean("mapred.compress.map.output", paramspace.EffectMap)
//	space, err := paramspace.NewSpace(buf, comp)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	joint := paramspace.NewMultiJobSpace()
//	joint.AddSpace(0, space)
//	point := joint.RandomPoint()
//	cfg := point.JobSpacePoint(0).ToConfig()
package paramspace
