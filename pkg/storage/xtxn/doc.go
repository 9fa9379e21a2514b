// Package xtxn 提供基于 WATCH/MULTI/EXEC 的乐观事务作用域，并在提交冲突时
// 自动以带抖动的指数退避重试整个作用域。
//
// # 设计理念
//
// Redis 的乐观事务由三步构成：WATCH 观察若干 key，读取当前值并计算新状态，
// MULTI/EXEC 原子提交。任一被观察 key 在观察与提交之间被其他客户端修改，
// EXEC 返回失败，整个作用域需要从头重来。xtxn 把"从头重来"做成基础设施：
//
//	txn, _ := xtxn.New(client)
//	err := txn.Run(ctx, func(tx *redis.Tx) error {
//	    cur, err := tx.Get(ctx, "counter").Int64()
//	    if err != nil && !errors.Is(err, redis.Nil) {
//	        return err
//	    }
//	    _, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
//	        pipe.Set(ctx, "counter", cur+1, 0)
//	        return nil
//	    })
//	    return err
//	}, "counter")
//
// # 重试语义
//
// 仅提交冲突（redis.TxFailedErr）触发重试；业务错误和传输错误立即返回。
// 重试间隔为指数退避加随机抖动，默认从 50ms 开始、倍增至 1s 封顶、
// 抖动 ±25%。重试耗尽后返回 [ErrContention]。
// 底层重试循环由 avast/retry-go/v5 驱动。
//
// # 并发安全
//
// Txn 自身无状态（仅持有客户端与配置），可被多个 goroutine 并发使用。
// 回调 fn 在每次尝试中都可能被重新执行，必须是可重入的。
package xtxn
