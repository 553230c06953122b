package configspace_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/bvbench/configspace"
)

var _ = Describe("Configuration table", func() {
	It("should hold the three references plus the full cross product", func() {
		Expect(configspace.Len()).To(Equal(3 + 5*3*3*2))
	})

	Describe("Reference configurations", func() {
		It("should resolve id 0 to the dynamic reference", func() {
			r, err := configspace.Resolve(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(Equal(configspace.Record{
				ID:           0,
				Variant:      configspace.DynamicReference,
				SIMD:         false,
				BranchFactor: 8,
				LeafSize:     8192,
				BufferSize:   0,
			}))
		})

		It("should resolve id 1 to the unbuffered leaf reference", func() {
			r, err := configspace.Resolve(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Variant).To(Equal(configspace.LeafReference))
			Expect(r.SIMD).To(BeFalse())
			Expect(r.BranchFactor).To(Equal(8))
			Expect(r.LeafSize).To(Equal(8192))
			Expect(r.Buffered()).To(BeFalse())
		})

		It("should resolve id 2 to the buffered leaf reference", func() {
			r, err := configspace.Resolve(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Variant).To(Equal(configspace.LeafReference))
			Expect(r.BufferSize).To(Equal(8))
			Expect(r.Buffered()).To(BeTrue())
		})
	})

	Describe("Cross product order", func() {
		It("should put the SIMD flag innermost", func() {
			a, _ := configspace.Resolve(3)
			b, _ := configspace.Resolve(4)
			Expect(a.SIMD).To(BeTrue())
			Expect(b.SIMD).To(BeFalse())
			Expect(a.BufferSize).To(Equal(b.BufferSize))
			Expect(a.LeafSize).To(Equal(b.LeafSize))
			Expect(a.BranchFactor).To(Equal(b.BranchFactor))
		})

		It("should follow branch, leaf, buffer, simd nesting", func() {
			id := 3
			for _, branch := range configspace.Branches() {
				for _, leaf := range configspace.Leaves() {
					for _, buffer := range configspace.Buffers() {
						for _, simd := range configspace.SIMDFlags() {
							r, err := configspace.Resolve(id)
							Expect(err).NotTo(HaveOccurred())
							Expect(r.ID).To(Equal(id))
							Expect(r.Variant).To(Equal(configspace.Generic))
							Expect(r.BranchFactor).To(Equal(branch))
							Expect(r.LeafSize).To(Equal(leaf))
							Expect(r.BufferSize).To(Equal(buffer))
							Expect(r.SIMD).To(Equal(simd))
							id++
						}
					}
				}
			}
			Expect(id).To(Equal(configspace.Len()))
		})

		It("should end with the widest, largest, unbuffered-SIMD-off entry", func() {
			r, err := configspace.Resolve(configspace.Len() - 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.BranchFactor).To(Equal(128))
			Expect(r.LeafSize).To(Equal(16384))
			Expect(r.BufferSize).To(Equal(32))
			Expect(r.SIMD).To(BeFalse())
		})
	})

	It("should yield the same mapping on every call", func() {
		first := configspace.All()
		second := configspace.All()
		Expect(second).To(Equal(first))
		for i, r := range first {
			Expect(r.ID).To(Equal(i))
			Expect(r.Validate()).To(Succeed())
		}
	})

	It("should not let callers mutate the table", func() {
		all := configspace.All()
		all[0].LeafSize = 1
		r, _ := configspace.Resolve(0)
		Expect(r.LeafSize).To(Equal(8192))
	})

	It("should hand out copies of the value lists", func() {
		branches := configspace.Branches()
		branches[0] = 3
		_ = append(configspace.Leaves()[:1], 7)
		configspace.SIMDFlags()[0] = false
		configspace.Buffers()[2] = 0

		Expect(configspace.Branches()).To(Equal([]int{8, 16, 32, 64, 128}))
		Expect(configspace.Leaves()).To(Equal([]int{4096, 8192, 16384}))
		Expect(configspace.Buffers()).To(Equal([]int{8, 16, 32}))
		Expect(configspace.SIMDFlags()).To(Equal([]bool{true, false}))
		r, _ := configspace.Resolve(3)
		Expect(r.BranchFactor).To(Equal(8))
		Expect(r.SIMD).To(BeTrue())
	})

	It("should tell table records from altered ones", func() {
		r, _ := configspace.Resolve(0)
		Expect(configspace.Same(r)).To(BeTrue())
		r.Variant = configspace.Generic
		Expect(configspace.Same(r)).To(BeFalse())
		Expect(configspace.Same(configspace.Record{ID: -1})).To(BeFalse())
		Expect(configspace.Same(configspace.Record{ID: 93})).To(BeFalse())
	})

	DescribeTable("out of range ids",
		func(id int) {
			_, err := configspace.Resolve(id)
			Expect(err).To(MatchError(configspace.ErrOutOfRange))
		},
		Entry("negative", -1),
		Entry("one past the end", 93),
		Entry("far past the end", 1<<20),
	)

	It("should find records by predicate", func() {
		simd := configspace.Find(func(r configspace.Record) bool { return r.SIMD })
		Expect(simd).To(HaveLen(45))
		refs := configspace.Find(func(r configspace.Record) bool { return r.Variant.IsReference() })
		Expect(refs).To(HaveLen(3))
	})
})

var _ = Describe("Variant", func() {
	It("should offset select only for the generic variant", func() {
		Expect(configspace.DynamicReference.SelectOffset()).To(Equal(uint64(0)))
		Expect(configspace.LeafReference.SelectOffset()).To(Equal(uint64(0)))
		Expect(configspace.Generic.SelectOffset()).To(Equal(uint64(1)))
	})

	It("should round-trip labels", func() {
		for _, v := range []configspace.Variant{
			configspace.DynamicReference, configspace.LeafReference, configspace.Generic,
		} {
			parsed, err := configspace.ParseVariant(v.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(v))
		}
		_, err := configspace.ParseVariant("uint64_t")
		Expect(err).To(HaveOccurred())
	})

	It("should panic on an unknown variant", func() {
		Expect(func() { configspace.Variant(7).SelectOffset() }).To(Panic())
		Expect(configspace.Variant(7).Valid()).To(BeFalse())
	})

	It("should encode records with variant labels", func() {
		r, _ := configspace.Resolve(1)
		data, err := json.Marshal(r)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"variant":"leaf"`))

		out, err := yaml.Marshal(r)
		Expect(err).NotTo(HaveOccurred())
		var back configspace.Record
		Expect(yaml.Unmarshal(out, &back)).To(Succeed())
		Expect(back).To(Equal(r))
	})
})

var _ = Describe("Record validation", func() {
	It("should reject non-positive branch factors and leaf sizes", func() {
		r := configspace.Record{Variant: configspace.Generic, BranchFactor: 0, LeafSize: 8}
		Expect(r.Validate()).To(MatchError(ContainSubstring("branch_factor")))
		r = configspace.Record{Variant: configspace.Generic, BranchFactor: 8, LeafSize: 0}
		Expect(r.Validate()).To(MatchError(ContainSubstring("leaf_size")))
	})

	It("should reject negative buffers", func() {
		r := configspace.Record{Variant: configspace.Generic, BranchFactor: 8, LeafSize: 8, BufferSize: -1}
		Expect(r.Validate()).To(MatchError(ContainSubstring("buffer_size")))
	})
})
