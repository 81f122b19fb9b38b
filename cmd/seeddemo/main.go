// Command seeddemo populates a DSAHub database with demo students and
// backfills a week of performance history for every profile, so dashboards
// and the leaderboard have something to show in a fresh environment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	userstore "github.com/vedamschool/dsahub/internal/app/store/users"
)

// Per-day score windows for the backfilled week, oldest day first.
var scoreWindows = [7][2]int{
	{50, 90},
	{40, 96},
	{55, 93},
	{47, 90},
	{52, 92},
	{40, 95},
	{45, 88},
}

type demoStudent struct {
	name  string
	email string
	rank  int
}

var demoStudents = []demoStudent{
	{"Asha Patel", "asha@vedam.org", 1},
	{"Ravi Kumar", "ravi@vedam.org", 2},
	{"Meera Nair", "meera@vedamschool.tech", 3},
}

func main() {
	mongoURI := flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	dbName := flag.String("db", "dsahub", "database name")
	skipStudents := flag.Bool("history-only", false, "only backfill performance history, create no demo students")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(*mongoURI, *dbName, *skipStudents, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

func run(mongoURI, dbName string, historyOnly bool, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	users := userstore.New(db)

	if !historyOnly {
		for _, s := range demoStudents {
			u, err := users.CreateDefault(ctx, primitive.NewObjectID(), s.email, s.name)
			if err != nil {
				if errors.Is(err, userstore.ErrDuplicateEmail) {
					logger.Info("demo student already exists", zap.String("email", s.email))
					continue
				}
				return fmt.Errorf("create %s: %w", s.email, err)
			}
			_, err = db.Collection("users").UpdateOne(ctx,
				bson.M{"_id": u.ID},
				bson.M{"$set": bson.M{"leaderboard_rank": s.rank}})
			if err != nil {
				return fmt.Errorf("set rank for %s: %w", s.email, err)
			}
			logger.Info("created demo student",
				zap.String("email", s.email),
				zap.Int("rank", s.rank))
		}
	}

	return backfillHistory(ctx, db, logger)
}

// backfillHistory writes a seven-day performance_history map onto every
// profile, ending yesterday so live solves keep owning today's entry.
func backfillHistory(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	cur, err := db.Collection("users").Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1, "name": 1}))
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	now := time.Now().UTC()
	count := 0

	for cur.Next(ctx) {
		var u struct {
			ID   primitive.ObjectID `bson:"_id"`
			Name string             `bson:"name"`
		}
		if err := cur.Decode(&u); err != nil {
			return fmt.Errorf("decode user: %w", err)
		}

		set := bson.M{}
		for i, w := range scoreWindows {
			day := now.AddDate(0, 0, i-len(scoreWindows)).Format("2006-01-02")
			set["performance_history."+day] = w[0] + rand.Intn(w[1]-w[0]+1)
		}

		if _, err := db.Collection("users").UpdateOne(ctx,
			bson.M{"_id": u.ID}, bson.M{"$set": set}); err != nil {
			return fmt.Errorf("backfill %s: %w", u.ID.Hex(), err)
		}
		logger.Info("backfilled performance history", zap.String("name", u.Name))
		count++
	}
	if err := cur.Err(); err != nil {
		return err
	}

	logger.Info("seed complete", zap.Int("users", count))
	return nil
}
