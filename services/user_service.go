package services

import (
	"context"
	"stitchmart_server/database"
	"stitchmart_server/lib"
	"stitchmart_server/structs"
	"stitchmart_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type UserService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewUserService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *UserService {
	return &UserService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// GetProfile returns the user with their shipping address, if any.
func (us *UserService) GetProfile(ctx context.Context, userId uuid.UUID) (*tables.User, *tables.ShippingAddress, error) {
	user, err := database.Query[tables.User](us.db).Where("id", userId).First(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}
	if user == nil {
		return nil, nil, lib.ErrNotFound
	}
	user.PasswordHash = ""

	address, err := database.Query[tables.ShippingAddress](us.db).Where("user_id", userId).First(ctx)
	if err != nil {
		return nil, nil, lib.MapPgError(err)
	}

	return user, address, nil
}

// GetShippingAddress returns the user's address or ErrNotFound.
func (us *UserService) GetShippingAddress(ctx context.Context, userId uuid.UUID) (*tables.ShippingAddress, error) {
	address, err := database.Query[tables.ShippingAddress](us.db).Where("user_id", userId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if address == nil {
		return nil, lib.ErrNotFound
	}
	return address, nil
}

// SaveShippingAddress creates or replaces the user's single shipping
// address and latches has_shipping_address on the user. The latch is
// one-way: it stays true even if the address is later edited.
func (us *UserService) SaveShippingAddress(ctx context.Context, userId uuid.UUID, req *structs.ShippingAddressRequest) (*tables.ShippingAddress, error) {
	existing, err := database.Query[tables.ShippingAddress](us.db).Where("user_id", userId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	var address *tables.ShippingAddress
	if existing == nil {
		address = &tables.ShippingAddress{
			UserId:     userId,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Address:    req.Address,
			City:       req.City,
			PostalCode: req.PostalCode,
			Province:   req.Province,
			Country:    req.Country,
			Phone:      req.Phone,
		}
		address, err = database.Query[tables.ShippingAddress](us.db).Insert(ctx, address)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
	} else {
		updates := map[string]any{
			"first_name":  req.FirstName,
			"last_name":   req.LastName,
			"address":     req.Address,
			"city":        req.City,
			"postal_code": req.PostalCode,
			"province":    req.Province,
			"country":     req.Country,
			"phone":       req.Phone,
			"updated_at":  time.Now(),
		}
		_, err = database.Query[tables.ShippingAddress](us.db).Where("user_id", userId).Update(ctx, updates)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		address, err = database.Query[tables.ShippingAddress](us.db).Where("user_id", userId).First(ctx)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
	}

	_, err = database.Query[tables.User](us.db).Where("id", userId).Update(ctx, map[string]any{
		"has_shipping_address": true,
		"updated_at":           time.Now(),
	})
	if err != nil {
		us.logger.Error("Failed to latch has_shipping_address", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapPgError(err)
	}

	if cacheErr := us.cacheService.DeleteUserFromCache(userId); cacheErr != nil {
		us.logger.Warn("Failed to invalidate user cache after address save", gecho.Field("error", cacheErr), gecho.Field("user_id", userId))
	}

	us.logger.Debug("Shipping address saved", gecho.Field("user_id", userId))
	return address, nil
}

// ListUsers returns a paginated user list for admins.
func (us *UserService) ListUsers(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.User], error) {
	query := database.Query[tables.User](us.db).OrderBy("created_at", database.DESC)
	result, err := database.Paginate(query, ctx, page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	for i := range result.Data {
		result.Data[i].PasswordHash = ""
	}
	return result, nil
}

// UpdateUser applies the admin-editable fields.
func (us *UserService) UpdateUser(ctx context.Context, userId uuid.UUID, req *structs.UserUpdateRequest) (*tables.User, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if req.Fullname != nil {
		updates["fullname"] = *req.Fullname
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.IsAdmin != nil {
		updates["is_admin"] = *req.IsAdmin
	}

	affected, err := database.Query[tables.User](us.db).Where("id", userId).Update(ctx, updates)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if affected == 0 {
		return nil, lib.ErrNotFound
	}

	if cacheErr := us.cacheService.DeleteUserFromCache(userId); cacheErr != nil {
		us.logger.Warn("Failed to invalidate user cache after update", gecho.Field("error", cacheErr), gecho.Field("user_id", userId))
	}

	user, err := database.Query[tables.User](us.db).Where("id", userId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if user == nil {
		// Deleted between the update and the read-back.
		return nil, lib.ErrNotFound
	}
	user.PasswordHash = ""
	return user, nil
}

// GetUserStats aggregates the user figures for the admin dashboard.
func (us *UserService) GetUserStats(ctx context.Context) (*structs.UserStats, error) {
	stats := &structs.UserStats{}

	var err error
	if stats.TotalUsers, err = database.Query[tables.User](us.db).Count(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}
	if stats.AdminUsers, err = database.Query[tables.User](us.db).Where("is_admin", true).Count(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}
	stats.RegularUsers = stats.TotalUsers - stats.AdminUsers
	if stats.UsersWithShipping, err = database.Query[tables.User](us.db).Where("has_shipping_address", true).Count(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}

	if stats.RecentUsers, err = database.Query[tables.User](us.db).
		OrderBy("created_at", database.DESC).
		Limit(5).
		All(ctx); err != nil {
		return nil, lib.MapPgError(err)
	}
	for i := range stats.RecentUsers {
		stats.RecentUsers[i].PasswordHash = ""
	}

	return stats, nil
}

// DeleteUser removes a user and their dependent rows.
func (us *UserService) DeleteUser(ctx context.Context, userId uuid.UUID) error {
	err := database.Transaction(us.db, ctx, func(tx bun.Tx) error {
		for _, table := range []string{"shipping_addresses", "wishlists", "product_reviews"} {
			if _, err := tx.NewDelete().Table(table).Where("user_id = ?", userId).Exec(ctx); err != nil {
				return err
			}
		}
		res, err := tx.NewDelete().Table("users").Where("id = ?", userId).Exec(ctx)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return lib.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return lib.MapPgError(err)
	}

	if cacheErr := us.cacheService.DeleteUserFromCache(userId); cacheErr != nil {
		us.logger.Warn("Failed to invalidate user cache after delete", gecho.Field("error", cacheErr), gecho.Field("user_id", userId))
	}

	us.logger.Info("User deleted", gecho.Field("user_id", userId))
	return nil
}
