package repository

import "time"

// idClock 生成以毫秒时间戳为基础的单调递增 ID
//
// 同一毫秒内多次生成时在上一个 ID 的基础上加一，保证唯一。
type idClock struct {
	now  func() time.Time
	last int64
}

func newIDClock(now func() time.Time) *idClock {
	if now == nil {
		now = time.Now
	}
	return &idClock{now: now}
}

// Next 返回下一个 ID 及其对应的时刻
func (c *idClock) Next() (int64, time.Time) {
	t := c.now()
	id := t.UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id, t
}
