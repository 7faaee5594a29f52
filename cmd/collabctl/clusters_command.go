package main

import (
	"fmt"
	"io"
	"sort"

	"codecollab-be/internal/config"
	"codecollab-be/internal/entity"
	"codecollab-be/internal/repository/specification"
	"codecollab-be/internal/repository/unitofwork"
	"codecollab-be/pkg/database"
	"codecollab-be/pkg/similarity"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type clusterMember struct {
	Username  string
	Interests string
}

func newClustersCommand(loadConfig func() *config.Config) *cobra.Command {
	var maxClusters int

	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Cluster all interest profiles and print the groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}

			ctx := cmd.Context()
			uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

			profiles, err := uow.ProfileRepository().FindAll(ctx,
				specification.InterestsNotEmpty{},
				specification.OrderBy{Field: "created_at"},
			)
			if err != nil {
				return err
			}

			ids := make([]uuid.UUID, 0, len(profiles))
			for _, p := range profiles {
				ids = append(ids, p.UserId)
			}
			users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
			if err != nil {
				return err
			}

			renderClusters(cmd.OutOrStdout(), groupProfiles(profiles, users, maxClusters))
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxClusters, "max-clusters", "k", similarity.DefaultMaxClusters, "Upper bound on the number of clusters")
	return cmd
}

// groupProfiles clusters profiles with the recommendation parameters and
// returns members keyed by cluster index.
func groupProfiles(profiles []*entity.Profile, users []*entity.User, maxClusters int) map[int][]clusterMember {
	groups := make(map[int][]clusterMember)
	if len(profiles) == 0 {
		return groups
	}

	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.Id] = u.Username
	}

	docs := make([]string, len(profiles))
	for i, p := range profiles {
		docs[i] = p.Interests
	}
	_, vectors := similarity.BuildTfIdf(docs)

	k := len(profiles)
	if maxClusters < k {
		k = maxClusters
	}
	assignments, _ := similarity.KMeans(vectors, k, similarity.DefaultMaxIterations, similarity.DefaultSeed)

	for i, cluster := range assignments {
		name, ok := names[profiles[i].UserId]
		if !ok {
			name = profiles[i].UserId.String()
		}
		groups[cluster] = append(groups[cluster], clusterMember{Username: name, Interests: profiles[i].Interests})
	}
	return groups
}

func renderClusters(out io.Writer, groups map[int][]clusterMember) {
	if len(groups) == 0 {
		fmt.Fprintln(out, "No profiles with interests")
		return
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	header := color.New(color.FgCyan, color.Bold)
	name := color.New(color.FgGreen)
	for _, id := range ids {
		header.Fprintf(out, "Cluster %d (%d)\n", id, len(groups[id]))
		for _, m := range groups[id] {
			fmt.Fprintf(out, "  %s  %s\n", name.Sprint(m.Username), m.Interests)
		}
	}
}
