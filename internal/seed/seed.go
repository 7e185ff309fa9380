package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"hearth/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumAuthors  int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with realistic demo content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes seeded content. Votes go first so the ledger never
// references rows that are already gone.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"votes", "comments", "posts", "profiles"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Seed populates the database with the requested volume of content.
func (s *Seeder) Seed(opts Options) error {
	if opts.NumAuthors <= 0 {
		opts.NumAuthors = 25
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 100
	}
	log.Printf("Seeding %d authors and %d posts...", opts.NumAuthors, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	authors := s.seedAuthors(opts.NumAuthors)
	if err := s.seedProfiles(authors); err != nil {
		return fmt.Errorf("failed to seed profiles: %w", err)
	}

	posts, err := s.seedPosts(authors, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := s.seedComments(authors, posts)
	if err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}
	log.Printf("✓ %d comments created", len(comments))

	votes, err := s.seedVotes(authors, posts, comments)
	if err != nil {
		return fmt.Errorf("failed to seed votes: %w", err)
	}
	log.Printf("✓ %d votes cast", votes)

	return nil
}

func (s *Seeder) seedAuthors(n int) []string {
	authors := make([]string, 0, n)
	for i := 0; i < n; i++ {
		authors = append(authors, s.factory.NewAuthorID())
	}
	return authors
}

// seedProfiles gives roughly two thirds of the authors a saved description;
// the rest exercise the empty-profile path.
func (s *Seeder) seedProfiles(authors []string) error {
	profiles := make([]*models.Profile, 0, len(authors))
	for _, id := range authors {
		if s.rng.Intn(3) == 0 {
			continue
		}
		profiles = append(profiles, s.factory.BuildProfile(id))
	}
	return s.factory.CreateProfilesBatch(profiles)
}

func (s *Seeder) seedPosts(authors []string, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := authors[s.rng.Intn(len(authors))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// seedComments gives each post a handful of root comments and threads
// replies under roughly a third of them.
func (s *Seeder) seedComments(authors []string, posts []*models.Post) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0, len(posts)*4)
	for _, post := range posts {
		numRoots := s.rng.Intn(6)
		for i := 0; i < numRoots; i++ {
			author := authors[s.rng.Intn(len(authors))]
			root := s.factory.BuildComment(author, post, nil)
			comments = append(comments, root)

			if s.rng.Intn(3) != 0 {
				continue
			}
			numReplies := 1 + s.rng.Intn(3)
			for j := 0; j < numReplies; j++ {
				replier := authors[s.rng.Intn(len(authors))]
				comments = append(comments, s.factory.BuildComment(replier, post, root))
			}
		}
	}
	if err := s.factory.CreateCommentsBatch(comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// seedVotes has a random subset of authors take a stance on each target.
// Each author appears at most once per target, matching the ledger's
// uniqueness rule.
func (s *Seeder) seedVotes(authors []string, posts []*models.Post, comments []*models.Comment) (int, error) {
	votes := make([]*models.Vote, 0, len(posts)*len(authors)/4)

	for _, post := range posts {
		id := post.ID
		for _, author := range s.sampleAuthors(authors) {
			votes = append(votes, &models.Vote{
				AuthorID:  author,
				PostID:    &id,
				Vote:      s.rng.Intn(4) != 0, // skew positive
				CreatedAt: time.Now(),
			})
		}
	}
	for _, comment := range comments {
		if s.rng.Intn(2) == 0 {
			continue
		}
		id := comment.ID
		for _, author := range s.sampleAuthors(authors) {
			votes = append(votes, &models.Vote{
				AuthorID:  author,
				CommentID: &id,
				Vote:      s.rng.Intn(4) != 0,
				CreatedAt: time.Now(),
			})
		}
	}

	if err := s.factory.CreateVotesBatch(votes); err != nil {
		return 0, err
	}
	return len(votes), nil
}

// sampleAuthors returns a random subset of the author pool, each id at most
// once.
func (s *Seeder) sampleAuthors(authors []string) []string {
	n := s.rng.Intn(len(authors)/2 + 1)
	if n == 0 {
		return nil
	}
	shuffled := make([]string, len(authors))
	copy(shuffled, authors)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
