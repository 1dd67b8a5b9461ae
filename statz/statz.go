package main

import (
	. "fmt"
	"github.com/dterei/gotsc"
	"github.com/klauspost/cpuid/v2"
	"github.com/minio/sha256-simd"
	"github.com/p7r0x7/blake2"
	"github.com/p7r0x7/blake2/internal/paint"
	"github.com/zeebo/blake3"
	"golang.org/x/sys/cpu"
	"hash"
	"math"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var sizes = [...]int{64, 512 << 10, 64 << 20}
var bytes, calltime = []byte(nil), gotsc.TSCOverhead()

// streaming measures a reusable hasher: Reset, one Write, then Sum into a reused buffer.
func streaming(newHash func() hash.Hash) func(b *testing.B) {
	return func(b *testing.B) {
		h := newHash()
		sum := make([]byte, 0, h.Size())
		b.SetBytes(int64(len(bytes)))
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			h.Reset()
			h.Write(bytes)
			h.Sum(sum[:0])
		}
	}
}

// oneShot measures a stateless sum function.
func oneShot(sum func(p []byte)) func(b *testing.B) {
	return func(b *testing.B) {
		b.SetBytes(int64(len(bytes)))
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			sum(bytes)
		}
	}
}

func benchAlg(alg func(b *testing.B)) {
	const s = len(sizes)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range sizes {
		bytes = paint.Bytes(v, "statz")

		totalHz, polls, mut, stop := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-stop:
						return
					default:
					}
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(alg)
		close(stop)
		log.Debugf("%d B input: %d iterations in %v", v, r.N, r.T)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		}
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
		mut.Unlock()
	}

	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

// fmtFloats right-aligns each value in a ten-column cell. Fractions keep seven significant
// digits but never more than six decimals.
func fmtFloats(f ...float64) string {
	var sb strings.Builder
	for _, v := range f {
		var cell string
		switch mag := math.Floor(math.Log10(math.Abs(v))); {
		case v == math.Trunc(v) && v <= 1e8:
			cell = strconv.FormatFloat(v, 'f', 0, 64)
		case v > 1e8 || mag < -6:
			cell = strconv.FormatFloat(v, 'g', 3, 64)
		default:
			cell = strconv.FormatFloat(v, 'f', int(math.Min(6, 6-mag)), 64)
		}
		sb.WriteString(Sprintf("%10s", cell))
	}
	return sb.String()
}

// banner describes the host: the numbers below mean little without it.
func banner() string {
	order := "little-endian"
	if cpu.IsBigEndian {
		order = "big-endian"
	}
	return Sprintf("%s (%d cores, AVX2 %v, %s)", cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores,
		cpuid.CPU.Supports(cpuid.AVX2), order)
}

func main() {
	setLogLevel()
	if calltime == 0 {
		log.Warn("no usable cycle counter; cycles per byte will be omitted")
	}
	Printf("Running Statz on %d CPUs!\n%s/%s %s\n\n",
		runtime.NumCPU(), runtime.GOOS, runtime.GOARCH, banner())
	t := time.Now()

	Printf("Integer input monobit bias:  %5.3f%%\n", monobit(integerInputs))
	Printf("Random input monobit bias:   %5.3f%%\n\n", monobit(randomInputs))

	Println("           64B      512K       64M")
	for _, alg := range []struct {
		name  string
		bench func(b *testing.B)
	}{
		{"github.com/p7r0x7/blake2 BLAKE2b-512", streaming(func() hash.Hash {
			d, _ := blake2.New512(nil)
			return d
		})},
		{"github.com/p7r0x7/blake2 BLAKE2s-256", oneShot(func(p []byte) { blake2.Sum256(p) })},
		{"github.com/p7r0x7/blake2 BLAKE2bp-512", streaming(func() hash.Hash {
			d, _ := blake2.NewParallel(64, nil)
			return d
		})},
		{"github.com/minio/sha256-simd", oneShot(func(p []byte) { sha256.Sum256(p) })},
		{"github.com/zeebo/blake3", oneShot(func(p []byte) { blake3.Sum256(p) })},
	} {
		Println(alg.name)
		benchAlg(alg.bench)
	}

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
