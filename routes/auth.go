package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"estate-portal-server/models"
	"estate-portal-server/storage"
	"estate-portal-server/utils"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
)

type googleUserInput struct {
	AccessToken string `json:"accessToken" validate:"required"`
	InviteCode  string `json:"inviteCode"`
}

type googleUserRes struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

type appleUserInput struct {
	IdentityToken string `json:"identityToken" validate:"required"`
	InviteCode    string `json:"inviteCode"`
}

func getAndHandleUserExists(user *models.User, email string) (bool, error) {
	err := storage.DB.Where("email = ?", email).Limit(1).Find(user).Error
	if err != nil {
		return false, err
	}
	return user.ID != 0, nil
}

// finishSocialSignIn applies the invite code (soft-fail), records the login
// in the activity trail, and returns the token pair. Authentication is never
// blocked by an invalid invite code.
func finishSocialSignIn(user *models.User, inviteCode string, ctx iris.Context) {
	role := inviteSvc.ApplyAfterSocialSignIn(user.ID, inviteCode)
	user.Role = role

	now := time.Now()
	storage.DB.Model(user).Update("last_login_at", now)
	storage.DB.Create(&models.OwnerActivityLog{
		UserID:      user.ID,
		Action:      models.ActionUserLogin,
		Description: fmt.Sprintf("signed in via %s", user.SocialProvider),
	})

	tokenPair, err := utils.CreateTokenPair(user.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"role":         user.Role,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

func GoogleLoginOrSignUp(ctx iris.Context) {
	var input googleUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	req, _ := http.NewRequest("GET", "https://www.googleapis.com/userinfo/v2/me", nil)
	req.Header.Set("Authorization", "Bearer "+input.AccessToken)
	res, googleErr := http.DefaultClient.Do(req)
	if googleErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var googleBody googleUserRes
	json.Unmarshal(body, &googleBody)
	if googleBody.Email == "" {
		utils.CreateError(iris.StatusUnauthorized, "unauthorized", "Invalid user token.", ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, googleBody.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		user = models.User{
			FirstName:      googleBody.GivenName,
			LastName:       googleBody.FamilyName,
			Email:          googleBody.Email,
			Role:           models.RoleCustomer,
			SocialLogin:    true,
			SocialProvider: "Google",
			AvatarURL:      googleBody.Picture,
		}
		if err := storage.DB.Create(&user).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		finishSocialSignIn(&user, input.InviteCode, ctx)
		return
	}

	if user.SocialLogin && user.SocialProvider == "Google" {
		finishSocialSignIn(&user, input.InviteCode, ctx)
		return
	}

	utils.CreateError(iris.StatusConflict, "email_registered", "Email already registered with another method.", ctx)
}

func AppleLoginOrSignUp(ctx iris.Context) {
	var input appleUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	res, httpErr := http.Get("https://appleid.apple.com/auth/keys")
	if httpErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	jwks, jwksErr := keyfunc.NewJSON(body)
	if jwksErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	token, tokenErr := jwt.Parse(input.IdentityToken, jwks.Keyfunc)
	if tokenErr != nil || !token.Valid {
		utils.CreateError(iris.StatusUnauthorized, "unauthorized", "Invalid user token.", ctx)
		return
	}

	email := fmt.Sprint(token.Claims.(jwt.MapClaims)["email"])
	if email == "" || email == "<nil>" {
		utils.CreateError(iris.StatusUnauthorized, "unauthorized", "Invalid user token.", ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		user = models.User{
			Email:          email,
			Role:           models.RoleCustomer,
			SocialLogin:    true,
			SocialProvider: "Apple",
		}
		if err := storage.DB.Create(&user).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		finishSocialSignIn(&user, input.InviteCode, ctx)
		return
	}

	if user.SocialLogin && user.SocialProvider == "Apple" {
		finishSocialSignIn(&user, input.InviteCode, ctx)
		return
	}

	utils.CreateError(iris.StatusConflict, "email_registered", "Email already registered with another method.", ctx)
}
