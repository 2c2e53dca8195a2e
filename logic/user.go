package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/config"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/dao"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/pkg"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoMiningPlan       = errors.New("no active mining plan")
	ErrClaimTooSoon       = errors.New("mining reward not ready yet")
)

// UserLogic handles accounts, authentication and mining claims.
type UserLogic struct {
	store       *dao.Store
	userDAO     *dao.UserDAO
	settingsDAO *dao.SettingsDAO
	notifier    Notifier
}

func NewUserLogic(store *dao.Store, userDAO *dao.UserDAO, settingsDAO *dao.SettingsDAO, notifier Notifier) *UserLogic {
	return &UserLogic{store: store, userDAO: userDAO, settingsDAO: settingsDAO, notifier: notifier}
}

// Register creates a user and, when a valid referral code is given,
// credits the referrer's wallet with the settings bonus in the same
// transaction as the account creation.
func (l *UserLogic) Register(ctx context.Context, email, password, displayName, referralCode string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	code, err := pkg.NewReferralCode()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         models.RoleUser,
		ReferralCode: code,
	}

	err = l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		users := l.userDAO.WithTx(tx)
		if referralCode != "" {
			referrer, err := users.GetUserByReferralCode(referralCode)
			if err != nil {
				return notFoundOr(err, "referral code")
			}
			settings, err := l.settingsDAO.WithTx(tx).Get()
			if err != nil {
				return err
			}
			if err := users.AdjustBalance(referrer.ID, dao.FieldWallet, settings.ReferralBonus); err != nil {
				return err
			}
			user.ReferredBy = referralCode
		}
		return users.CreateUser(user)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "referred": user.ReferredBy != ""}).Info("user registered")
	l.notify()
	return user, nil
}

// Login verifies the password and issues a JWT carrying the user id
// and role claim.
func (l *UserLogic) Login(email, password string) (*models.User, string, time.Time, error) {
	user, err := l.userDAO.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expireAt, err := generateJWT(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expireAt, nil
}

// Profile returns the user's own record.
func (l *UserLogic) Profile(userID uint64) (*models.User, error) {
	user, err := l.userDAO.GetUserByID(userID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

// ClaimMining credits the daily reward of the user's mining plan once
// per interval. The time gate lives in a guarded update so two
// concurrent claims cannot both pay.
func (l *UserLogic) ClaimMining(ctx context.Context, userID uint64) (float64, error) {
	user, err := l.userDAO.GetUserByID(userID)
	if err != nil {
		return 0, notFoundOr(err, "user")
	}
	if user.MiningPlan == "" {
		return 0, ErrNoMiningPlan
	}
	settings, err := l.settingsDAO.Get()
	if err != nil {
		return 0, err
	}
	plan, found := settings.Plan(user.MiningPlan)
	if !found {
		return 0, fmt.Errorf("plan %q missing from catalog: %w", user.MiningPlan, ErrNotFound)
	}

	now := time.Now()
	cutoff := now.Add(-time.Duration(settings.MiningIntervalHours) * time.Hour)
	var claimed bool
	err = l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		claimed, err = l.userDAO.WithTx(tx).ClaimMiningReward(userID, plan.DailyReward, cutoff, now)
		return err
	})
	if err != nil {
		return 0, err
	}
	if !claimed {
		return 0, ErrClaimTooSoon
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "reward": plan.DailyReward}).Info("mining reward claimed")
	return plan.DailyReward, nil
}

func (l *UserLogic) notify() {
	if l.notifier != nil {
		l.notifier.Notify()
	}
}

func generateJWT(userID uint64, role string) (string, time.Time, error) {
	expireAt := time.Now().Add(time.Duration(config.GlobalConfig.Auth.ExpHour) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     expireAt.Unix(),
	})
	tokenString, err := token.SignedString([]byte(config.GlobalConfig.Auth.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expireAt, nil
}
