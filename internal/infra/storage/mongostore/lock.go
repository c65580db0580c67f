package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// acquireLock вставляет документ-блокировку с _id = key. Если документ уже есть,
// пробует перехватить просроченную блокировку, иначе ждет retryInterval и повторяет
func (s *Store) acquireLock(ctx context.Context, key, owner string) error {
	for {
		now := s.now()
		doc := lockDocument{ID: key, Owner: owner, ExpiresAt: now.Add(s.lockTTL), CreatedAt: now}

		_, err := s.locks.InsertOne(ctx, doc)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("%w: insert lock %s: %v", ErrLock, key, err)
		}

		res, err := s.locks.UpdateOne(ctx,
			bson.M{"_id": key, "expiresAt": bson.M{"$lte": now}},
			bson.M{"$set": bson.M{"owner": owner, "expiresAt": doc.ExpiresAt, "createdAt": now}},
		)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("%w: steal expired lock %s: %v", ErrLock, key, err)
		}
		if res.ModifiedCount == 1 {
			return nil
		}

		timer := time.NewTimer(s.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// releaseLock удаляет документ-блокировку, только если она все еще принадлежит owner.
// Выполняется даже при отмененном контексте запроса
func (s *Store) releaseLock(ctx context.Context, key, owner string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	_, _ = s.locks.DeleteOne(releaseCtx, bson.M{"_id": key, "owner": owner})
}
