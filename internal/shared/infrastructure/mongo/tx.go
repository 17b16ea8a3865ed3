package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// TxRunner 把一个回调放进 mongo 事务执行。
// 回调里的所有读写都通过事务内 ctx 走同一个 session，提交冲突时整体失败。
//
// 游戏内所有"读-改-写共享状态"的动作（抢城位、接受交易、捐献奇观、
// 撤回援军）都必须经由它执行：事务内重新读权威状态、重新校验前置条件。
type TxRunner struct {
	client *mongo.Client
}

func NewTxRunner(client *mongo.Client) *TxRunner {
	return &TxRunner{client: client}
}

// ErrConflict 表示事务提交时与其他客户端的写入冲突（TransientTransactionError）。
var ErrConflict = errors.New("mongo: transaction conflict")

func (r *TxRunner) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if r == nil || r.client == nil {
		return errors.New("mongo tx runner: client is nil")
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.HasErrorLabel("TransientTransactionError") {
		return errors.Join(ErrConflict, err)
	}
	var wErr mongo.WriteException
	if errors.As(err, &wErr) && wErr.HasErrorLabel("TransientTransactionError") {
		return errors.Join(ErrConflict, err)
	}
	return err
}
