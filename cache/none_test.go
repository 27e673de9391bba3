package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cohsim/cache"
)

var _ = Describe("No coherence", func() {
	var (
		sink *recordingSink
		c    *cache.Cache
	)

	BeforeEach(func() {
		sink = &recordingSink{}
		c = mustNew(smallConfig(cache.ProtocolNone), sink)
	})

	It("should miss then hit on a repeated load", func() {
		Expect(c.Access(0x40, cache.Load)).To(BeFalse())
		Expect(c.Access(0x40, cache.Load)).To(BeTrue())

		set := c.Decoder().Index(0x40)
		line := c.LineAt(set, 0)
		pointer := c.Pointer(set)

		Expect(c.Access(0x40, cache.Load)).To(BeTrue())
		Expect(c.LineAt(set, 0)).To(Equal(line))
		Expect(c.Pointer(set)).To(Equal(pointer))
	})

	It("should keep a stored block dirty across a load", func() {
		c.Access(0x00, cache.Store)
		Expect(sink.last().Writeback).To(BeFalse())

		Expect(c.Access(0x04, cache.Load)).To(BeTrue())
		Expect(sink.last().Writeback).To(BeFalse())

		line, _, found := c.Lookup(0x00)
		Expect(found).To(BeTrue())
		Expect(line.Dirty).To(BeTrue())
		Expect(line.State).To(Equal(cache.Valid))
	})

	It("should set the dirty bit on a store hit", func() {
		c.Access(0x00, cache.Load)
		c.Access(0x00, cache.Store)

		line, _, _ := c.Lookup(0x00)
		Expect(line.Dirty).To(BeTrue())
	})

	It("should write back a dirty victim", func() {
		c.Access(0x000, cache.Store)
		c.Access(0x080, cache.Load)

		Expect(c.Access(0x100, cache.Load)).To(BeFalse())
		Expect(sink.last().Writeback).To(BeTrue())

		_, _, found := c.Lookup(0x000)
		Expect(found).To(BeFalse())
	})

	It("should not write back a clean victim", func() {
		c.Access(0x000, cache.Load)
		c.Access(0x080, cache.Load)
		c.Access(0x100, cache.Load)

		Expect(sink.last().Writeback).To(BeFalse())
	})

	It("should count remote notifications as misses without touching lines", func() {
		c.Access(0x00, cache.Store)
		before := c.LineAt(0, 0)

		Expect(c.Access(0x00, cache.LoadMiss)).To(BeFalse())
		Expect(c.Access(0x00, cache.StoreMiss)).To(BeFalse())

		Expect(c.LineAt(0, 0)).To(Equal(before))
		Expect(c.Pointer(0)).To(Equal(1))
		Expect(sink.last()).To(Equal(statsEvent{Action: cache.StoreMiss}))
	})
})
