package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for records persisted in the corpus store. Written by hand
// against the mus-go primitives; struct field order is the wire order.
var (
	IDMUS             = idMUS{}
	VectorMUS         = vectorMUS{}
	CannedAnswerMUS   = cannedAnswerMUS{}
	DomainCategoryMUS = domainCategoryMUS{}

	stringsMUS = stringSliceMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

type stringSliceMUS struct{}

func (stringSliceMUS) Marshal(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func (stringSliceMUS) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, ErrNegativeLength
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]string, 0, length)
	for i := 0; i < length; i++ {
		s, sn, serr := ord.String.Unmarshal(bs[n:])
		n += sn
		if serr != nil {
			return nil, n, serr
		}
		v = append(v, s)
	}
	return v, n, nil
}

func (stringSliceMUS) Size(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}

type vectorMUS struct{}

func (vectorMUS) Marshal(v []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func (vectorMUS) Unmarshal(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, ErrNegativeLength
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]float32, 0, length)
	for i := 0; i < length; i++ {
		f, fn, ferr := raw.Float32.Unmarshal(bs[n:])
		n += fn
		if ferr != nil {
			return nil, n, ferr
		}
		v = append(v, f)
	}
	return v, n, nil
}

func (vectorMUS) Size(v []float32) (size int) {
	size = varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

type cannedAnswerMUS struct{}

func (cannedAnswerMUS) Marshal(v CannedAnswer, bs []byte) (n int) {
	n = ord.String.Marshal(v.Category, bs)
	n += stringsMUS.Marshal(v.Keywords, bs[n:])
	n += ord.String.Marshal(v.Answer, bs[n:])
	n += varint.Int.Marshal(v.Order, bs[n:])
	return n
}

func (cannedAnswerMUS) Unmarshal(bs []byte) (v CannedAnswer, n int, err error) {
	v.Category, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}

	keywords, kn, err := stringsMUS.Unmarshal(bs[n:])
	n += kn
	if err != nil {
		return v, n, err
	}
	v.Keywords = keywords

	answer, an, err := ord.String.Unmarshal(bs[n:])
	n += an
	if err != nil {
		return v, n, err
	}
	v.Answer = answer

	order, on, err := varint.Int.Unmarshal(bs[n:])
	n += on
	if err != nil {
		return v, n, err
	}
	v.Order = order

	return v, n, nil
}

func (cannedAnswerMUS) Size(v CannedAnswer) (size int) {
	size = ord.String.Size(v.Category)
	size += stringsMUS.Size(v.Keywords)
	size += ord.String.Size(v.Answer)
	size += varint.Int.Size(v.Order)
	return size
}

type domainCategoryMUS struct{}

func (domainCategoryMUS) Marshal(v DomainCategory, bs []byte) (n int) {
	n = stringsMUS.Marshal(v.Terms, bs)
	n += raw.Float64.Marshal(v.Weight, bs[n:])
	return n
}

func (domainCategoryMUS) Unmarshal(bs []byte) (v DomainCategory, n int, err error) {
	v.Terms, n, err = stringsMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}

	weight, wn, err := raw.Float64.Unmarshal(bs[n:])
	n += wn
	if err != nil {
		return v, n, err
	}
	v.Weight = weight

	return v, n, nil
}

func (domainCategoryMUS) Size(v DomainCategory) (size int) {
	size = stringsMUS.Size(v.Terms)
	size += raw.Float64.Size(v.Weight)
	return size
}
