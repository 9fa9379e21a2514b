package xbloom

import (
	"context"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/omeyang/rediskit/pkg/util/xcodec"
)

// Filter 是存放在单个 Redis key 上的布隆过滤器。
// 参数在构造时固定；无内部可变状态，可并发使用。
type Filter struct {
	client redis.UniversalClient
	key    string
	m      uint64 // 位数组长度
	k      int    // 哈希函数个数
}

// New 创建布隆过滤器。
// numElements 为目标容量，falsePositives 为可容忍的误判率。
func New(client redis.UniversalClient, key string, numElements int, falsePositives float64) (*Filter, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}
	if numElements < 1 {
		return nil, ErrInvalidNumElements
	}
	if falsePositives <= 0 || falsePositives >= 1 {
		return nil, ErrInvalidFalsePositives
	}

	ln2 := math.Ln2
	m := uint64(math.Ceil(-float64(numElements) * math.Log(falsePositives) / (ln2 * ln2)))
	if m < 1 {
		m = 1
	}
	k := int(math.Round(float64(m) / float64(numElements) * ln2))
	if k < 1 {
		k = 1
	}

	return &Filter{client: client, key: key, m: m, k: k}, nil
}

// Key 返回过滤器的 Redis key。
func (f *Filter) Key() string {
	return f.key
}

// NumBits 返回位数组长度 m。
func (f *Filter) NumBits() uint64 {
	return f.m
}

// NumHashes 返回每个元素的哈希位置个数 k。
func (f *Filter) NumHashes() int {
	return f.k
}

// positions 计算一个元素的 k 个位位置。
// 规范化编码 → xxhash 64 位摘要 → 两个 32 位半部 → 增强型双重哈希。
func (f *Filter) positions(x any) ([]int64, error) {
	data, err := xcodec.Marshal(x)
	if err != nil {
		return nil, err
	}
	sum := xxhash.Sum64(data)
	h1 := uint64(uint32(sum >> 32))
	h2 := uint64(uint32(sum))

	out := make([]int64, f.k)
	for i := range out {
		ui := uint64(i)
		out[i] = int64((h1 + ui*h2 + ui*ui) % f.m)
	}
	return out, nil
}

// Add 将一个元素加入过滤器：k 个置位在一次 pipeline 中完成。
func (f *Filter) Add(ctx context.Context, x any) error {
	return f.AddMany(ctx, x)
}

// AddMany 将多个元素加入过滤器，所有置位合并为一次 pipeline 往返。
func (f *Filter) AddMany(ctx context.Context, xs ...any) error {
	if len(xs) == 0 {
		return nil
	}
	all := make([][]int64, len(xs))
	for i, x := range xs {
		pos, err := f.positions(x)
		if err != nil {
			return err
		}
		all[i] = pos
	}

	_, err := f.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, pos := range all {
			for _, p := range pos {
				pipe.SetBit(ctx, f.key, p, 1)
			}
		}
		return nil
	})
	return err
}

// Contains 判断元素是否可能在集合中。
// 返回 false 表示元素一定未被 Add 过；返回 true 有至多约 p 的误判概率。
func (f *Filter) Contains(ctx context.Context, x any) (bool, error) {
	res, err := f.ContainsMany(ctx, x)
	if err != nil {
		return false, err
	}
	return res[0], nil
}

// ContainsMany 批量成员判定，位读取合并为一次 pipeline 往返。
// 返回的布尔序列与输入顺序对齐。
func (f *Filter) ContainsMany(ctx context.Context, xs ...any) ([]bool, error) {
	if len(xs) == 0 {
		return nil, nil
	}
	all := make([][]int64, len(xs))
	for i, x := range xs {
		pos, err := f.positions(x)
		if err != nil {
			return nil, err
		}
		all[i] = pos
	}

	cmds := make([][]*redis.IntCmd, len(xs))
	_, err := f.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, pos := range all {
			cmds[i] = make([]*redis.IntCmd, len(pos))
			for j, p := range pos {
				cmds[i][j] = pipe.GetBit(ctx, f.key, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(xs))
	for i, elem := range cmds {
		member := true
		for _, cmd := range elem {
			if cmd.Val() == 0 {
				member = false
				break
			}
		}
		out[i] = member
	}
	return out, nil
}

// ApproximateSize 由置位数估算已插入元素个数：
// ñ = −(m/k)·ln(1 − X/m)，X 为置位数；位数组饱和时返回 m/k。
func (f *Filter) ApproximateSize(ctx context.Context) (int64, error) {
	setBits, err := f.client.BitCount(ctx, f.key, nil).Result()
	if err != nil {
		return 0, err
	}
	if setBits <= 0 {
		return 0, nil
	}
	mf := float64(f.m)
	kf := float64(f.k)
	if uint64(setBits) >= f.m {
		return int64(math.Round(mf / kf)), nil
	}
	estimate := -(mf / kf) * math.Log(1-float64(setBits)/mf)
	return int64(math.Round(estimate)), nil
}

// Clear 删除位数组，过滤器回到空状态。
func (f *Filter) Clear(ctx context.Context) error {
	return f.client.Del(ctx, f.key).Err()
}
