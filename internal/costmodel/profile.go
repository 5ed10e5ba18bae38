package costmodel

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

// JobProfile holds the measured characteristics of a job. The model combines
// a profile with Settings to predict the job's runtime.
type JobProfile struct {
	InputMB            float64
	MapTasks           int
	MapSlots           int
	ReduceSlots        int
	MapCPUMsPerMB      float64
	ReduceCPUMsPerMB   float64
	MapOutputRatio     float64 // map output bytes per input byte
	RecordsPerMB       float64
	CompressionRatio   float64 // compressed size / raw size for the default codec
	CompressCPUMsPerMB float64
	DiskMBPerSec       float64
	NetworkMBPerSec    float64
	TaskStartupMs      float64
	TaskHeapMB         float64
}

// DefaultJobProfile returns a mid-sized job on a small cluster
func DefaultJobProfile() JobProfile {
	return JobProfile{
		InputMB:            4096,
		MapTasks:           64,
		MapSlots:           16,
		ReduceSlots:        8,
		MapCPUMsPerMB:      30,
		ReduceCPUMsPerMB:   20,
		MapOutputRatio:     0.5,
		RecordsPerMB:       8000,
		CompressionRatio:   0.4,
		CompressCPUMsPerMB: 5,
		DiskMBPerSec:       100,
		NetworkMBPerSec:    60,
		TaskStartupMs:      1000,
		TaskHeapMB:         512,
	}
}

// Merge returns base with every non-zero field of override applied
func Merge(base, override JobProfile) JobProfile {
	pick := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	pickInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}

	out := base
	pick(&out.InputMB, override.InputMB)
	pickInt(&out.MapTasks, override.MapTasks)
	pickInt(&out.MapSlots, override.MapSlots)
	pickInt(&out.ReduceSlots, override.ReduceSlots)
	pick(&out.MapCPUMsPerMB, override.MapCPUMsPerMB)
	pick(&out.ReduceCPUMsPerMB, override.ReduceCPUMsPerMB)
	pick(&out.MapOutputRatio, override.MapOutputRatio)
	pick(&out.RecordsPerMB, override.RecordsPerMB)
	pick(&out.CompressionRatio, override.CompressionRatio)
	pick(&out.CompressCPUMsPerMB, override.CompressCPUMsPerMB)
	pick(&out.DiskMBPerSec, override.DiskMBPerSec)
	pick(&out.NetworkMBPerSec, override.NetworkMBPerSec)
	pick(&out.TaskStartupMs, override.TaskStartupMs)
	pick(&out.TaskHeapMB, override.TaskHeapMB)
	return out
}

// Prediction breaks a predicted job runtime into phases, in milliseconds
type Prediction struct {
	MapTaskMs     float64
	ReduceTaskMs  float64
	MapPhaseMs    float64
	ReducePhaseMs float64
	Spills        int
	MergePasses   int
}

// TotalMs is the predicted job runtime
func (p Prediction) TotalMs() float64 {
	return p.MapPhaseMs + p.ReducePhaseMs
}

// sortCPUMsPerRecord is the per-record, per-comparison-level sort cost
const sortCPUMsPerRecord = 0.0004

// Predict estimates the job runtime under the given settings
func (p JobProfile) Predict(s Settings) Prediction {
	mapTasks := math.Max(1, float64(p.MapTasks))
	reduceTasks := math.Max(1, math.Round(s.ReduceTasks))
	factor := math.Max(2, math.Round(s.SortFactor))

	ratio, compressCPU := 1.0, 0.0
	if s.CompressMapOutput {
		c := codecs[s.Codec]
		if c.ratioScale == 0 {
			c = codecs["default"]
		}
		ratio = utils.Clamp(p.CompressionRatio*c.ratioScale, 0.05, 1.0)
		compressCPU = p.CompressCPUMsPerMB * c.cpuScale
	}

	// Map side: read split, run map function, sort and spill the output
	// buffer, then merge spills into a single segment.
	splitMB := p.InputMB / mapTasks
	outMB := splitMB * p.MapOutputRatio
	writtenMB := outMB * ratio

	bufferMB := math.Max(1, s.SortMB*utils.Clamp(s.SpillPercent, 0.05, 1.0))
	spills := 1
	if outMB > bufferMB {
		spills = int(math.Ceil(outMB / bufferMB))
	}
	mapMerges := mergePasses(spills, factor)

	records := outMB * p.RecordsPerMB
	recordsPerSpill := math.Max(2, records/float64(spills))

	// Sort buffers larger than the task heap push the JVM into GC pressure.
	heapPressure := s.SortMB / math.Max(1, p.TaskHeapMB)
	gcMs := 0.0
	if heapPressure > 0.5 {
		gcMs = (heapPressure - 0.5) * (heapPressure - 0.5) * splitMB * p.MapCPUMsPerMB * 4
	}

	mapTaskMs := floats.Sum([]float64{
		p.TaskStartupMs,
		transferMs(splitMB, p.DiskMBPerSec),
		splitMB * p.MapCPUMsPerMB,
		outMB * compressCPU,
		records * sortCPUMsPerRecord * math.Log2(recordsPerSpill),
		transferMs(writtenMB, p.DiskMBPerSec),
		float64(mapMerges) * (2*transferMs(writtenMB, p.DiskMBPerSec) + factor*seekMs),
		gcMs,
	})

	// Reduce side: shuffle every map's partition, merge the map segments,
	// then run the reduce function and write the output.
	shuffledMB := mapTasks * writtenMB / reduceTasks
	rawMB := mapTasks * outMB / reduceTasks
	reduceMerges := mergePasses(int(mapTasks), factor)

	reduceTaskMs := floats.Sum([]float64{
		p.TaskStartupMs,
		transferMs(shuffledMB, p.NetworkMBPerSec),
		rawMB * compressCPU * 0.5,
		float64(reduceMerges) * (2*transferMs(shuffledMB, p.DiskMBPerSec) + factor*seekMs),
		rawMB * p.ReduceCPUMsPerMB,
		transferMs(rawMB, p.DiskMBPerSec),
	})

	return Prediction{
		MapTaskMs:     mapTaskMs,
		ReduceTaskMs:  reduceTaskMs,
		MapPhaseMs:    waves(mapTasks, p.MapSlots) * mapTaskMs,
		ReducePhaseMs: waves(reduceTasks, p.ReduceSlots) * reduceTaskMs,
		Spills:        spills,
		MergePasses:   mapMerges + reduceMerges,
	}
}

// seekMs is charged once per merged stream per merge pass
const seekMs = 8.0

// mergePasses returns the number of merge rounds needed to reduce segments
// to one when merging factor streams at a time
func mergePasses(segments int, factor float64) int {
	if segments <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log(float64(segments)) / math.Log(factor)))
}

func waves(tasks float64, slots int) float64 {
	return math.Ceil(tasks / math.Max(1, float64(slots)))
}

// transferMs is the time to move mb megabytes at mbPerSec
func transferMs(mb, mbPerSec float64) float64 {
	return mb / math.Max(1e-9, mbPerSec) * 1000
}
