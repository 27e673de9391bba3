package main

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cohsim/cache"
)

const pingPongTrace = `# two cores writing the same block
0 1 0x80
1 1 0x80
0 0 0x80
1 0 0x100
`

var _ = Describe("cachesim", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		tracePath = filepath.Join(dir, "trace.2t.txt")
		Expect(os.WriteFile(tracePath, []byte(pingPongTrace), 0644)).To(Succeed())

		numCores = 2
		traceOut = ""
		traceOutDst = ""
	})

	It("should print a report per core and a total", func() {
		config := cache.DefaultConfig()
		config.Protocol = cache.ProtocolMSI

		var out bytes.Buffer
		Expect(runTrace(&out, config)).To(Succeed())

		report := out.String()
		Expect(report).To(ContainSubstring("protocol msi, 2 core(s), cache 256 32 2, 4 accesses"))
		Expect(report).To(ContainSubstring("Core 0:\n"))
		Expect(report).To(ContainSubstring("Core 1:\n"))
		Expect(report).To(ContainSubstring("Total:\n"))
		Expect(report).To(ContainSubstring("  B_written_cache_to_bus_wb 64\n"))
	})

	It("should record accesses to a CSV file", func() {
		traceOut = "csv"
		traceOutDst = filepath.Join(dir, "records")

		var out bytes.Buffer
		Expect(runTrace(&out, cache.DefaultConfig())).To(Succeed())

		_, err := os.Stat(traceOutDst + ".csv")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should reject an unknown record format", func() {
		_, err := newTraceWriter("xml", "")
		Expect(err).To(MatchError(ContainSubstring(`unknown trace output "xml"`)))
	})

	It("should reject more cores in the trace than configured", func() {
		numCores = 1

		var out bytes.Buffer
		Expect(runTrace(&out, cache.DefaultConfig())).To(MatchError(ContainSubstring("unknown core")))
	})

	It("should size the cache from a log2 shape", func() {
		config, err := applyCacheShape(cache.DefaultConfig(), []int{13, 6, 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(config.Capacity).To(Equal(8192))
		Expect(config.BlockSize).To(Equal(64))
		Expect(config.Associativity).To(Equal(4))
		Expect(config.Validate()).To(Succeed())

		var out bytes.Buffer
		Expect(runTrace(&out, config)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("cache 8192 64 4"))
	})

	It("should reject a partial log2 shape", func() {
		_, err := applyCacheShape(cache.DefaultConfig(), []int{13, 6})
		Expect(err).To(MatchError(ContainSubstring("got 2 value(s)")))
	})

	Describe("commands", func() {
		var out, errOut bytes.Buffer

		BeforeEach(func() {
			out.Reset()
			errOut.Reset()
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&errOut)
		})

		It("should print the effective config", func() {
			rootCmd.SetArgs([]string{"config", "-p", "vi", "--capacity", "1024",
				"--block-size", "32"})

			Expect(rootCmd.Execute()).To(Succeed())
			Expect(out.String()).To(ContainSubstring(`"protocol": "vi"`))
			Expect(out.String()).To(ContainSubstring("sets=16 offset_bits=5 index_bits=4 tag_bits=23"))
		})

		It("should fail on an invalid geometry", func() {
			rootCmd.SetArgs([]string{"config", "--block-size", "48"})

			Expect(rootCmd.Execute()).To(MatchError(ContainSubstring("block_size=48")))
		})

		It("should fail on a missing trace", func() {
			rootCmd.SetArgs([]string{"run", "-t", filepath.Join(dir, "missing.txt"),
				"--block-size", "32"})

			Expect(rootCmd.Execute()).To(MatchError(ContainSubstring("failed to open trace file")))
		})
	})
})
