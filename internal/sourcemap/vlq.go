package sourcemap

import (
	"fmt"
	"strings"
)

const base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	vlqShift    = 5
	vlqBase     = 1 << vlqShift
	vlqMask     = vlqBase - 1
	vlqContinue = vlqBase
)

// writeVLQ appends value as a base64 VLQ: the sign goes in the lowest bit,
// then 5-bit groups are emitted least significant first with bit 6 set on
// every group but the last.
func writeVLQ(b *strings.Builder, value int) {
	var digit int
	if value < 0 {
		digit = (-value << 1) | 1
	} else {
		digit = value << 1
	}

	for {
		segment := digit & vlqMask
		digit >>= vlqShift
		if digit > 0 {
			segment |= vlqContinue
		}
		b.WriteByte(base64Digits[segment])
		if digit == 0 {
			return
		}
	}
}

// EncodeVLQ returns the base64 VLQ encoding of value.
func EncodeVLQ(value int) string {
	var b strings.Builder
	writeVLQ(&b, value)
	return b.String()
}

// DecodeVLQ decodes every value in one mappings segment.
func DecodeVLQ(segment string) ([]int, error) {
	var values []int
	value, shift := 0, 0

	for i := 0; i < len(segment); i++ {
		d := strings.IndexByte(base64Digits, segment[i])
		if d < 0 {
			return nil, fmt.Errorf("invalid base64 digit %q at %d", segment[i], i)
		}

		value += (d & vlqMask) << shift
		if d&vlqContinue != 0 {
			shift += vlqShift
			continue
		}

		if value&1 == 1 {
			values = append(values, -(value >> 1))
		} else {
			values = append(values, value>>1)
		}
		value, shift = 0, 0
	}

	if shift != 0 {
		return nil, fmt.Errorf("truncated VLQ in %q", segment)
	}
	return values, nil
}
